// Package protocol defines the JSON messages exchanged with a maskentry
// editing server and a client for driving a remote session.
//
// A session holds one masked buffer. The client sends a Request per user
// intent and the server answers every request with a Response carrying the
// authoritative buffer state, so a client never computes edits itself:
//
//	→ {"op":"mask","pattern":"0000-00-00"}
//	← {"text":"    -  -  ","cursor":0,"field":-1,"fields":["","",""],"empty":true,"mask":"0000-00-00"}
//	→ {"op":"insert","pos":0,"text":"2024x"}
//	← {"text":"2024-  -  ","cursor":5,"field":1,...,"rejects":["invalid character: ..."]}
//
// # Usage Example
//
//	c, err := protocol.Dial(ctx, "ws://127.0.0.1:8765/ws")
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if _, err := c.SetMask("00:00"); err != nil {
//	    return err
//	}
//	resp, err := c.Insert(0, "1345")
//	fmt.Println(resp.Text) // 13:45
package protocol
