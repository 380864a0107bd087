package history

import (
	"bufio"
	"io"
	"strings"
	"time"
)

// sentinel is the form-feed line the shell hook uses to separate one
// record's key/value pairs from the next (§6 "separated by \x0C (form-feed)
// sentinel lines").
const sentinel = "\x0C"

// ParseUpdate reads `chronicler update`'s stdin stream: blocks of `key=value`
// lines (or `key: value`), one block per record, each block terminated by a
// line containing only the form-feed sentinel. It returns one Record per
// completed block; a final block not terminated by a sentinel is still
// returned (EOF also closes a block).
func ParseUpdate(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var records []Record
	fields := map[string]string{}
	flush := func() {
		if len(fields) == 0 {
			return
		}
		records = append(records, recordFromFields(fields))
		fields = map[string]string{}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == sentinel {
			flush()
			continue
		}
		key, value, ok := splitKV(line)
		if !ok {
			continue
		}
		fields[key] = value
	}
	flush()

	if err := scanner.Err(); err != nil {
		return records, err
	}
	return records, nil
}

func splitKV(line string) (key, value string, ok bool) {
	if line == "" {
		return "", "", false
	}
	if idx := strings.IndexByte(line, '='); idx >= 0 {
		return line[:idx], line[idx+1:], true
	}
	if idx := strings.Index(line, ": "); idx >= 0 {
		return line[:idx], line[idx+2:], true
	}
	return "", "", false
}

func recordFromFields(fields map[string]string) Record {
	rec := Record{
		Kind:      KindCommand,
		Timestamp: time.Now().UTC(),
		Directory: fields["dir"],
		Command:   fields["cmd"],
		Session:   fields["session"],
	}
	if fields["kind"] == string(KindDirectory) {
		rec.Kind = KindDirectory
	}
	if ts, ok := fields["ts"]; ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = parsed
		}
	}
	if exit, ok := fields["exit"]; ok {
		rec.ExitCode = parseExit(exit)
	}
	return rec
}

func parseExit(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		n = -n
	}
	return n
}
