package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-cscart/response"
	"github.com/deploymenttheory/go-api-sdk-cscart/status"
	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"
)

// printOutcome writes a successful outcome as indented JSON, filtered through the
// --query expression when one is set. Any other outcome becomes the command error,
// with a hint on stderr for HTTP errors.
func (a *app) printOutcome(cmd *cobra.Command, outcome *response.Outcome) error {
	if err := outcome.Err(); err != nil {
		if outcome.HTTPError != nil {
			printHint(cmd.ErrOrStderr(), outcome.HTTPError.StatusCode)
		}
		return err
	}
	w := cmd.OutOrStdout()

	value, err := plainJSON(outcome.Value)
	if err != nil {
		return err
	}
	if a.query != "" {
		value, err = applyQuery(value, a.query)
		if err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printHint(w io.Writer, statusCode int) {
	hint := status.TranslateStatusCode(statusCode)
	if status.IsRetryableStatusCode(statusCode) {
		hint += " The request may succeed if retried."
	}
	fmt.Fprintln(w, "hint:", hint)
}

// plainJSON re-decodes v so it only holds the types gojq understands. Numbers keep
// their precision: integers become int or *big.Int, everything else float64.
func plainJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return queryNumbers(out), nil
}

func queryNumbers(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for key, elem := range v {
			v[key] = queryNumbers(elem)
		}
		return v
	case []any:
		for i, elem := range v {
			v[i] = queryNumbers(elem)
		}
		return v
	case json.Number:
		return parseNumber(v)
	default:
		return v
	}
}

func parseNumber(n json.Number) any {
	if i, err := strconv.ParseInt(n.String(), 10, 0); err == nil {
		return int(i)
	}
	if bi, ok := new(big.Int).SetString(n.String(), 10); ok {
		return bi
	}
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return f
}

func applyQuery(data any, expression string) (any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query expression: %w", err)
	}

	var results []any
	iter := query.Run(data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}

	if len(results) == 1 {
		return results[0], nil
	}
	return results, nil
}

// readData parses a --data value: inline JSON, or @path to read it from a file.
func readData(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("--data is required")
	}

	data := []byte(raw)
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read --data file: %w", err)
		}
		data = content
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("--data is not valid JSON: %w", err)
	}
	return v, nil
}
