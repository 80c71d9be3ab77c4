package ensemble

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

type Tuning struct {
	TickTime             int
	InitLimit            int
	SyncLimit            int
	QuorumListenOnAllIPs bool
	SnapRetainCount      int
	PurgeInterval        int
}

func DefaultTuning() Tuning {
	return Tuning{
		TickTime:             2000,
		InitLimit:            10,
		SyncLimit:            5,
		QuorumListenOnAllIPs: true,
		SnapRetainCount:      10,
		PurgeInterval:        24,
	}
}

// ApplyEnv overrides autopurge settings with the values found in the
// environment, if any.
func (t *Tuning) ApplyEnv(env *Env) {
	if env.SnapRetainCount != nil {
		t.SnapRetainCount = *env.SnapRetainCount
	}

	if env.PurgeInterval != nil {
		t.PurgeInterval = *env.PurgeInterval
	}
}

// ReservedKeys returns the keys of the server properties file which are
// always derived and cannot be set as extra properties.
func ReservedKeys() []string {
	return []string{
		"tickTime",
		"initLimit",
		"syncLimit",
		"quorumListenOnAllIPs",
		"autopurge.snapRetainCount",
		"autopurge.purgeInterval",
		"dataDir",
		"clientPort",
	}
}

func IsReservedKey(key string) bool {
	if strings.HasPrefix(key, "server.") {
		return true
	}

	for _, k := range ReservedKeys() {
		if k == key {
			return true
		}
	}

	return false
}

// IsValidPropertyKey reports whether key can be written as is on the left
// side of a properties line.
func IsValidPropertyKey(key string) bool {
	if key == "" || key[0] == '#' || key[0] == '!' {
		return false
	}

	for _, c := range key {
		if unicode.IsSpace(c) || unicode.IsControl(c) {
			return false
		}

		switch c {
		case '=', ':', '\\':
			return false
		}
	}

	return true
}

// IsValidPropertyValue reports whether value fits on a single properties
// line. A trailing backslash would continue the line.
func IsValidPropertyValue(value string) bool {
	if strings.ContainsAny(value, "\r\n") {
		return false
	}

	return !strings.HasSuffix(value, "\\")
}

type ServerProperties struct {
	Tuning Tuning

	DataDirectory string
	ClientPort    Port

	Extra   map[string]string
	Servers []Property
}

func NewServerProperties(tuning Tuning, dataDirectory string, node Instance, e *Ensemble) *ServerProperties {
	return &ServerProperties{
		Tuning: tuning,

		DataDirectory: dataDirectory,
		ClientPort:    node.ClientPort,

		Servers: e.PeerList(),
	}
}

func (p *ServerProperties) Properties() []Property {
	t := p.Tuning

	entries := []Property{
		{"tickTime", strconv.Itoa(t.TickTime)},
		{"initLimit", strconv.Itoa(t.InitLimit)},
		{"syncLimit", strconv.Itoa(t.SyncLimit)},
		{"quorumListenOnAllIPs", strconv.FormatBool(t.QuorumListenOnAllIPs)},
		{"autopurge.snapRetainCount", strconv.Itoa(t.SnapRetainCount)},
		{"autopurge.purgeInterval", strconv.Itoa(t.PurgeInterval)},
		{"dataDir", p.DataDirectory},
		{"clientPort", strconv.Itoa(int(p.ClientPort))},
	}

	keys := make([]string, 0, len(p.Extra))
	for key := range p.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entries = append(entries, Property{key, p.Extra[key]})
	}

	return append(entries, p.Servers...)
}

func (p *ServerProperties) Encode(buf *bytes.Buffer) {
	for _, entry := range p.Properties() {
		fmt.Fprintf(buf, "%s=%s\n", entry.Key, entry.Value)
	}
}

func (p *ServerProperties) Bytes() []byte {
	var buf bytes.Buffer
	p.Encode(&buf)

	return buf.Bytes()
}
