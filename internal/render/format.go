package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "01/2006"
	presentText = "Hiện tại"
)

// dateLine: "MM/YYYY - MM/YYYY" или "MM/YYYY - Hiện tại".
// Без даты начала строка не выводится.
func dateLine(start, end string) string {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return ""
	}
	if e, err := time.Parse(dateLayout, end); err == nil {
		return s.Format(monthLayout) + " - " + e.Format(monthLayout)
	}
	return s.Format(monthLayout) + " - " + presentText
}

func parseHex(hex string) (r, g, b int, ok bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	case 8:
		h = h[:6]
	default:
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// chipTextColor - черный текст на светлом фоне, белый на темном.
func chipTextColor(background string) string {
	r, g, b, ok := parseHex(background)
	if !ok {
		return "#FFFFFF"
	}
	luminance := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if luminance > 0.5 {
		return "#000000"
	}
	return "#FFFFFF"
}

// brighten прибавляет percent% от 255 к каждому каналу.
func brighten(hex string, percent float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	add := func(c int) int {
		v := float64(c) + percent/100*255
		if v > 255 {
			v = 255
		}
		return int(v + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", add(r), add(g), add(b))
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
