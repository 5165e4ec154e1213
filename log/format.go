// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/holiman/uint256"
)

const (
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

func levelColor(l slog.Level) int {
	switch {
	case l >= LevelCrit:
		return 35
	case l >= slog.LevelError:
		return 31
	case l >= slog.LevelWarn:
		return 33
	case l >= slog.LevelInfo:
		return 32
	case l >= slog.LevelDebug:
		return 36
	default:
		return 34
	}
}

func (h *TerminalHandler) format(buf []byte, r slog.Record) []byte {
	lvl := LevelAlignedString(r.Level)
	if h.useColor {
		buf = fmt.Appendf(buf, "\x1b[%dm%s\x1b[0m", levelColor(r.Level), lvl)
	} else {
		buf = append(buf, lvl...)
	}
	buf = append(buf, " ["...)
	buf = r.Time.AppendFormat(buf, termTimeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		if pad := termMsgJust - len(r.Message); pad > 0 {
			buf = append(buf, strings.Repeat(" ", pad)...)
		}
	}

	for _, attr := range h.attrs {
		buf = appendAttr(buf, attr, h.useColor)
	}
	r.Attrs(func(attr slog.Attr) bool {
		buf = appendAttr(buf, attr, h.useColor)
		return true
	})
	return append(buf, '\n')
}

func appendAttr(buf []byte, attr slog.Attr, color bool) []byte {
	buf = append(buf, ' ')
	if color {
		buf = fmt.Appendf(buf, "\x1b[%dm%s\x1b[0m=", levelColor(slog.LevelInfo), attr.Key)
	} else {
		buf = append(buf, attr.Key...)
		buf = append(buf, '=')
	}
	return append(buf, escape(formatValue(attr.Value))...)
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	case slog.KindDuration:
		return v.Duration().String()
	}
	switch x := v.Any().(type) {
	case nil:
		return "<nil>"
	case *uint256.Int:
		if x == nil {
			return "<nil>"
		}
		return x.Dec()
	case *big.Int:
		if x == nil {
			return "<nil>"
		}
		return x.String()
	case *uint64:
		if x == nil {
			return "<nil>"
		}
		return strconv.FormatUint(*x, 10)
	case error:
		return x.Error()
	case time.Time:
		return x.Format(timeFormat)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%+v", v.Any())
}

func escape(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " =\"\t\r\n") {
		return strconv.Quote(s)
	}
	return s
}
