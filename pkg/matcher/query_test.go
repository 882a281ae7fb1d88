package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryParser_TryMatch(t *testing.T) {
	tests := []struct {
		name   string
		source string
		pos    int
		want   string
		query  *Query
	}{
		{
			name:   "plain",
			source: "/host/key",
			want:   "/host/key",
			query:  &Query{Host: "host", Key: "key"},
		},
		{
			name:   "stops at comma",
			source: "/host/key,5m)",
			want:   "/host/key",
			query:  &Query{Host: "host", Key: "key"},
		},
		{
			name:   "key with params",
			source: `/Zabbix server/net.if.in["eth0",bytes])`,
			want:   `/Zabbix server/net.if.in["eth0",bytes]`,
			query:  &Query{Host: "Zabbix server", Key: `net.if.in["eth0",bytes]`},
		},
		{
			name:   "nested array param",
			source: `/h/key[a,[b,"c]"],d]`,
			want:   `/h/key[a,[b,"c]"],d]`,
			query:  &Query{Host: "h", Key: `key[a,[b,"c]"],d]`},
		},
		{
			name:   "escaped quote in key param",
			source: `/h/k["a\"]"]`,
			want:   `/h/k["a\"]"]`,
			query:  &Query{Host: "h", Key: `k["a\"]"]`},
		},
		{
			name:   "empty host",
			source: "//trap",
			want:   "//trap",
			query:  &Query{Host: "", Key: "trap"},
		},
		{
			name:   "host macro",
			source: "/{HOST.HOST}/agent.ping",
			want:   "/{HOST.HOST}/agent.ping",
			query:  &Query{Host: "{HOST.HOST}", Key: "agent.ping"},
		},
		{
			name:   "wildcards with filter",
			source: `/*/vfs.fs.size[*,free]?[group="Linux servers"])`,
			want:   `/*/vfs.fs.size[*,free]?[group="Linux servers"]`,
			query:  &Query{Host: "*", Key: "vfs.fs.size[*,free]", Filter: `group="Linux servers"`},
		},
		{
			name:   "at offset",
			source: "avg(/host/key)",
			pos:    4,
			want:   "/host/key",
			query:  &Query{Host: "host", Key: "key"},
		},
	}

	p := NewQueryParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := MatchAt(p, tt.source, tt.pos)
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Text)
			assert.Equal(t, len(tt.want), res.Length)
			assert.Equal(t, tt.query, res.Value)
		})
	}
}

func TestQueryParser_NoMatch(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "empty", source: ""},
		{name: "no leading slash", source: "host/key"},
		{name: "missing key", source: "/host/"},
		{name: "missing second slash", source: "/host"},
		{name: "trailing space in host", source: "/host /key"},
		{name: "unterminated key params", source: `/host/key["a",`},
		{name: "unterminated quoted key param", source: `/host/key["a]`},
		{name: "double nested array", source: "/h/key[[[a]]]"},
		{name: "unterminated filter", source: "/h/key?[tag=1"},
		{name: "comma", source: ",5m)"},
	}

	p := NewQueryParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := MatchAt(p, tt.source, 0)
			assert.False(t, ok)
		})
	}
}

func TestQueryParser_OutOfRange(t *testing.T) {
	p := NewQueryParser()

	_, ok := MatchAt(p, "/h/k", 4)
	assert.False(t, ok)
	_, ok = MatchAt(p, "/h/k", -1)
	assert.False(t, ok)
	assert.Equal(t, "item query", p.Name())
}
