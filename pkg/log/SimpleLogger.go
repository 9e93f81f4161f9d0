// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/navwar/gomirror/pkg/ts"
)

const (
	FormatJSONL = "jsonl"
	FormatText  = "text"
)

// SimpleLogger writes one timestamped line per message.
// It is safe for concurrent use.
type SimpleLogger struct {
	mutex    sync.Mutex
	writer   io.Writer
	format   string
	layout   ts.Layout
	location *time.Location
	clock    clockwork.Clock
}

func (l *SimpleLogger) Log(msg string, fields ...map[string]interface{}) error {
	merged := map[string]interface{}{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}

	now := l.layout.Format(l.clock.Now().In(l.location))

	var line []byte
	switch l.format {
	case FormatText:
		line = formatText(now, msg, merged)
	default:
		m := map[string]interface{}{}
		for k, v := range merged {
			m[k] = v
		}
		m["ts"] = now
		m["msg"] = msg
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("error marshaling log message %q: %w", msg, err)
		}
		line = append(b, '\n')
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	_, err := l.writer.Write(line)
	return err
}

func formatText(now string, msg string, fields map[string]interface{}) []byte {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	b.WriteString(now)
	b.WriteString(" - ")
	b.WriteString(msg)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(formatValue(fields[k]))
	}
	b.WriteString("\n")
	return b.Bytes()
}

func formatValue(v interface{}) string {
	str := fmt.Sprint(v)
	if len(str) == 0 || strings.ContainsAny(str, " \t\n\"=") {
		return strconv.Quote(str)
	}
	return str
}

type NewSimpleLoggerInput struct {
	Writer   io.Writer
	Format   string         // jsonl or text, defaults to jsonl
	Layout   ts.Layout      // defaults to RFC3339
	Location *time.Location // defaults to local time
	Clock    clockwork.Clock
}

func NewSimpleLoggerWithInput(input *NewSimpleLoggerInput) *SimpleLogger {
	l := &SimpleLogger{
		writer:   input.Writer,
		format:   input.Format,
		layout:   input.Layout,
		location: input.Location,
		clock:    input.Clock,
	}
	if len(l.format) == 0 {
		l.format = FormatJSONL
	}
	if len(l.layout) == 0 {
		l.layout = ts.NamedLayouts["RFC3339"]
	}
	if l.location == nil {
		l.location = time.Local
	}
	if l.clock == nil {
		l.clock = clockwork.NewRealClock()
	}
	return l
}

func NewSimpleLogger(w io.Writer) *SimpleLogger {
	return NewSimpleLoggerWithInput(&NewSimpleLoggerInput{Writer: w})
}
