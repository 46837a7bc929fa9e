/*
Package server implements msgpack IPC for the completion session.

The server speaks binary MessagePack over stdin/stdout. Clients feed it the
raw events a text field produces and receive the full session state back:
tracked text, pending suggestion, ranked options, focused index and the index
Tab would select. No rendering concern crosses the boundary; responses are
plain data records.

# IPC

Each request carries an ID and an op:

	{"id": "r1", "op": "text", "t": "hippo"}
	{"id": "r2", "op": "key",  "k": "tab"}
	{"id": "r3", "op": "save", "p": "amph", "c": "ibian"}
	{"id": "r4", "op": "reload"}
	{"id": "r5", "op": "stats"}

The "key" op accepts tab, enter, up and down. Responses repeat the ID and
include per-request timing in microseconds:

	{"id": "r1", "t": "hippo", "s": "potamus", "o": [...], "fi": -1, "ti": -1, "tt": 120}

Errors carry a code modelled on HTTP status values. Unknown ops and malformed
events are client errors; a session used before initialization is a 500.
*/
package server

// Request is an incoming event from the client.
type Request struct {
	ID string `msgpack:"id"`
	Op string `msgpack:"op"` // "text", "key", "save", "reload", "stats", "health"

	Text       string `msgpack:"t,omitempty"` // for "text"
	Key        string `msgpack:"k,omitempty"` // for "key": "tab", "enter", "up", "down"
	Prefix     string `msgpack:"p,omitempty"` // for "save"
	Completion string `msgpack:"c,omitempty"` // for "save"
}

// OptionPayload is one ranked completion option.
type OptionPayload struct {
	TypedPrefix     string `msgpack:"tp"`
	RemainingPrefix string `msgpack:"rp,omitempty"`
	Completion      string `msgpack:"c"`
	Freq            int    `msgpack:"f,omitempty"`
	FullReplacement bool   `msgpack:"x,omitempty"`
}

// StateResponse is the session snapshot returned for text/key events.
type StateResponse struct {
	ID         string          `msgpack:"id"`
	Text       string          `msgpack:"t"`
	Prefix     string          `msgpack:"p,omitempty"`
	Suggestion string          `msgpack:"s,omitempty"`
	Options    []OptionPayload `msgpack:"o,omitempty"`
	Focused    int             `msgpack:"fi"`
	TabTarget  int             `msgpack:"ti"`
	TimeTaken  int64           `msgpack:"tt"`
}

// StatusResponse acknowledges management ops.
type StatusResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
