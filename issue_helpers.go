package cardbrand

// issueAt creates an Issue at the given offset with provided code and message.
// kv is an optional list of alternating key/value pairs stored in Params.
func issueAt(offset int, code, msg string, kv ...any) Issue {
	it := Issue{Code: code, Message: msg, Offset: offset}
	if len(kv) >= 2 {
		it.Params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				it.Params[k] = kv[i+1]
			}
		}
	}
	return it
}
