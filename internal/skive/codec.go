package skive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// MarshalJSON writes the nested wire shape, keeping insertion order:
//
//	{"skills":{"cognitive":{"analytical":1}},"identity":{"selfEfficacy":4}}
func (r Ratings) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range firstSeen(r.order, func(p Path) string { return string(p.Domain()) }) {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, d)
		paths := r.DomainPaths(Domain(d))
		if !Domain(d).Nested() {
			r.writeLeaves(&buf, paths)
			continue
		}
		buf.WriteByte('{')
		for j, sub := range firstSeen(paths, Path.Sub) {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeKey(&buf, sub)
			var inSub []Path
			for _, p := range paths {
				if p.Sub() == sub {
					inSub = append(inSub, p)
				}
			}
			r.writeLeaves(&buf, inSub)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Ratings) writeLeaves(buf *bytes.Buffer, paths []Path) {
	buf.WriteByte('{')
	for i, p := range paths {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, p.Leaf())
		buf.WriteString(strconv.Itoa(r.scores[p]))
	}
	buf.WriteByte('}')
}

func writeKey(buf *bytes.Buffer, k string) {
	b, _ := json.Marshal(k)
	buf.Write(b)
	buf.WriteByte(':')
}

func firstSeen(paths []Path, key func(Path) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range paths {
		k := key(p)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// UnmarshalJSON reads the nested wire shape in document order. Unknown
// domains and null leaves are skipped; scores are rounded and clamped into
// range.
func (r *Ratings) UnmarshalJSON(data []byte) error {
	out := NewRatings()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = out
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return err
		}
		d := Domain(name)
		if !d.Valid() {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return fmt.Errorf("skip %q: %w", name, err)
			}
			continue
		}
		if err := out.decodeDomain(dec, d); err != nil {
			return fmt.Errorf("decode %s: %w", d, err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	*r = out
	return nil
}

func (r *Ratings) decodeDomain(dec *json.Decoder, d Domain) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		if !d.Nested() {
			if err := r.decodeScore(dec, JoinPath(d, key)); err != nil {
				return err
			}
			continue
		}
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		for dec.More() {
			leaf, err := readKey(dec)
			if err != nil {
				return err
			}
			if err := r.decodeScore(dec, JoinPath(d, key, leaf)); err != nil {
				return err
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

// decodeScore records the leaf at p. A null leaf is left out so Backfill
// can restore it from the seed.
func (r *Ratings) decodeScore(dec *json.Decoder, p Path) error {
	var n *json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	if n == nil {
		return nil
	}
	f, err := n.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%s: %w", p, err)
	}
	// Clamp as a float: converting an out-of-range float to int is undefined.
	f = math.Min(math.Max(math.Round(f), MinScore), MaxScore)
	if _, ok := r.scores[p]; !ok {
		r.order = append(r.order, p)
	}
	r.scores[p] = int(f)
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := t.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, t)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	t, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := t.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", t)
	}
	return s, nil
}
