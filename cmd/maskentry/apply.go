package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/discovery"
	"github.com/muurk/maskentry/internal/logging"
	"github.com/muurk/maskentry/internal/mask"
	"github.com/muurk/maskentry/internal/maskinput"
	"github.com/muurk/maskentry/internal/protocol"
	"github.com/muurk/maskentry/internal/ui"
)

// Apply command flags
var (
	applyMask     string
	applyValue    string
	applyKeys     string
	applyFormat   string
	applyServer   string
	applyInstance string
	applyTimeout  int
)

func init() {
	applyCmd.Flags().StringVar(&applyMask, "mask", "", "Mask pattern (empty edits free text)")
	applyCmd.Flags().StringVar(&applyValue, "value", "", "Initial value, typed through the mask")
	applyCmd.Flags().StringVar(&applyKeys, "keys", "", "Key script to replay")
	applyCmd.Flags().StringVar(&applyFormat, "format", "text", "Output format (text, json)")
	applyCmd.Flags().StringVar(&applyServer, "server", "", "Replay against a remote session (ws:// or wss:// URL)")
	applyCmd.Flags().StringVar(&applyInstance, "instance", "", "Replay against the server advertising this mDNS instance name")
	applyCmd.Flags().IntVar(&applyTimeout, "timeout", 10, "Remote connection timeout in seconds")

	applyCmd.MarkFlagsMutuallyExclusive("server", "instance")

	rootCmd.AddCommand(applyCmd)
}

// applyCmd replays keystrokes without a terminal
var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Replay a key script through a mask",
	Long: `Replay keystrokes through a mask and print the resulting value.

Plain characters in the script are typed one at a time. Named keys are
written between angle brackets:

  <bs>    backspace        <del>   delete
  <left>  cursor left      <right> cursor right
  <home>  start of value   <end>   end of value
  <tab>   next field       <stab>  previous field
  <lt>    a literal '<'

Refused keystrokes are reported but do not stop the replay. With --server
the script is sent to a running 'maskentry serve' instead of the local
editor; --instance finds that server over mDNS first.`,
	Example: `  # Type a date
  maskentry apply --mask "0000-00-00" --keys "20240115"

  # Type a separator early to skip the rest of a field, print JSON
  maskentry apply --mask "0000-00-00" --keys "2024-1-15" --format json

  # Replay against a server
  maskentry apply --server ws://127.0.0.1:8765/ws --mask "(000) 000-0000" --keys "5551234567"`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

// applyResult is the outcome of a replayed script.
type applyResult struct {
	Mask     string   `json:"mask,omitempty"`
	Value    string   `json:"value"`
	Cursor   int      `json:"cursor"`
	Fields   []string `json:"fields,omitempty"`
	Complete bool     `json:"complete"`
	Rejects  []string `json:"rejects,omitempty"`
}

func runApply(cmd *cobra.Command, args []string) error {
	if err := checkFormat(applyFormat); err != nil {
		return err
	}
	keys, err := parseScript(applyKeys)
	if err != nil {
		return fmt.Errorf("invalid key script: %w", err)
	}

	url := applyServer
	if applyInstance != "" {
		scanner := discovery.NewScanner()
		scanner.Timeout = time.Duration(applyTimeout) * time.Second
		found, err := scanner.Find(cmd.Context(), applyInstance)
		if err != nil {
			return err
		}
		url = found.WebSocketURL()
	}

	var res applyResult
	if url != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(applyTimeout)*time.Second)
		defer cancel()
		res, err = applyRemote(ctx, url, applyMask, applyValue, keys)
	} else {
		res, err = applyLocal(applyMask, applyValue, keys)
	}
	if err != nil {
		return err
	}

	return printApplyResult(cmd.OutOrStdout(), res, applyFormat)
}

// applyLocal replays keys through a headless masked input.
func applyLocal(pattern, value string, keys []keystroke) (applyResult, error) {
	if pattern != "" {
		if _, err := mask.Compile(pattern); err != nil {
			return applyResult{}, fmt.Errorf("invalid mask: %w", err)
		}
	}

	m, _ := maskinput.New(maskinput.Config{Mask: pattern, Value: value}).Focus()

	var rejects []string
	for _, k := range keys {
		m, _ = m.Update(k.msg())
		if err := m.Err(); err != nil {
			rejects = append(rejects, err.Error())
		}
	}

	fields, _ := m.Editor().Fields()
	logging.Debug("Key script applied",
		zap.String("mask", pattern),
		zap.Int("keys", len(keys)),
		zap.Int("rejected", len(rejects)),
	)
	return applyResult{
		Mask:     pattern,
		Value:    m.Value(),
		Cursor:   m.Cursor(),
		Fields:   fields,
		Complete: m.Complete(),
		Rejects:  rejects,
	}, nil
}

// applyRemote replays keys against a session on a running server. Cursor
// keys are resolved against the cursor reported by the previous response.
func applyRemote(ctx context.Context, url, pattern, value string, keys []keystroke) (applyResult, error) {
	client, err := protocol.Dial(ctx, url)
	if err != nil {
		return applyResult{}, err
	}
	defer client.Close()

	resp, err := client.SetMask(pattern)
	if err != nil {
		return applyResult{}, err
	}
	if value != "" {
		if resp, err = client.Do(protocol.Request{Op: protocol.OpText, Text: value}); err != nil {
			return applyResult{}, err
		}
	}
	if resp, err = client.Do(protocol.Request{Op: protocol.OpGrab}); err != nil {
		return applyResult{}, err
	}

	var rejects []string
	for _, k := range keys {
		req, ok := remoteRequest(k, resp)
		if !ok {
			continue
		}
		if resp, err = client.Do(req); err != nil {
			return applyResult{}, fmt.Errorf("key %s: %w", k, err)
		}
		rejects = append(rejects, resp.Rejects...)
	}

	res := applyResult{
		Mask:    resp.Mask,
		Value:   resp.Text,
		Cursor:  resp.Cursor,
		Fields:  resp.Fields,
		Rejects: rejects,
	}
	if p, err := mask.Compile(resp.Mask); err == nil {
		res.Complete = p.Complete(resp.Text)
	} else {
		res.Complete = resp.Text != ""
	}
	return res, nil
}

// remoteRequest translates a keystroke into a session request given the
// last known state. It reports false for keys with no effect there, such as
// backspace at the start of the value.
func remoteRequest(k keystroke, last *protocol.Response) (protocol.Request, bool) {
	cursor := last.Cursor
	length := len([]rune(last.Text))

	switch k.kind {
	case keyRune:
		return protocol.Request{Op: protocol.OpInsert, Pos: cursor, Text: string(k.r)}, true
	case keyBackspace:
		return protocol.Request{Op: protocol.OpDelete, Start: cursor - 1, End: cursor}, cursor > 0
	case keyDelete:
		return protocol.Request{Op: protocol.OpDelete, Start: cursor, End: cursor + 1}, cursor < length
	case keyLeft:
		return protocol.Request{Op: protocol.OpCursor, Pos: max(cursor-1, 0)}, true
	case keyRight:
		return protocol.Request{Op: protocol.OpCursor, Pos: min(cursor+1, length)}, true
	case keyHome:
		return protocol.Request{Op: protocol.OpCursor, Pos: 0}, true
	case keyEnd:
		return protocol.Request{Op: protocol.OpCursor, Pos: length}, true
	case keyTab:
		return protocol.Request{Op: protocol.OpFocus, Direction: protocol.DirectionForward}, true
	case keyShiftTab:
		return protocol.Request{Op: protocol.OpFocus, Direction: protocol.DirectionBackward}, true
	}
	return protocol.Request{}, false
}

func printApplyResult(out io.Writer, res applyResult, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	value := strconv.Quote(res.Value)
	if p, err := mask.Compile(res.Mask); err == nil {
		value = ui.RenderMasked(p, res.Value)
	}

	details := []ui.Detail{
		{Key: "Value", Value: value},
		{Key: "Cursor", Value: strconv.Itoa(res.Cursor)},
	}
	if res.Mask != "" {
		details = append([]ui.Detail{{Key: "Mask", Value: res.Mask}}, details...)
		details = append(details, ui.Detail{Key: "Fields", Value: strings.Join(quoteAll(res.Fields), " ")})
	}

	printer := ui.NewPrinter(out)
	if len(res.Rejects) == 0 {
		printer.PrintSuccess("Keys applied", details...)
		return nil
	}
	for i, r := range res.Rejects {
		details = append(details, ui.Detail{Key: fmt.Sprintf("Rejected %d", i+1), Value: r})
	}
	printer.PrintWarning("Keys applied with rejects", details...)
	return nil
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}
