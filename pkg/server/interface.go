/*
Package server implements msgpack IPC for command name completion.

Editors and other front ends start the program in IPC mode and exchange
msgpack values over stdin/stdout. Each request carries an ID that is echoed in
the response.

On start the server announces itself:

	{"status": "ready"}

Completion requests use this structure, the action may be omitted:

	{"id": "req_001", "action": "complete", "p": "st", "l": 10}

The server responds with candidates in ascending order, timing in microseconds:

	{"id": "req_001", "s": [{"w": "start", "r": 1}, {"w": "status", "r": 2}], "c": 2, "t": 12}

Setting "i" asks for the single candidate at that 0-indexed position, an
index past the last match gives an empty list:

	{"id": "req_002", "p": "st", "i": 1}

Other actions:

	{"id": "h1", "action": "health"}   -> {"id": "h1", "status": "ok"}
	{"id": "s1", "action": "stats"}    -> {"id": "s1", "status": "ok", "nodes": 12, "words": 4}

Failures are reported as {"id": ..., "e": "message", "c": 400}.
*/
package server

// Request is any message sent by a client
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"`
	Prefix string `msgpack:"p"`
	Limit  int    `msgpack:"l,omitempty"`
	Index  *int   `msgpack:"i,omitempty"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatusResponse answers ready and health checks
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// StatsResponse reports the size of the completion vocabulary
type StatsResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Nodes  int    `msgpack:"nodes"`
	Words  int    `msgpack:"words"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
