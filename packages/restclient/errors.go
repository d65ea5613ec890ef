package restclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotImplemented is matched by every error the Stub transport returns.
var ErrNotImplemented = errors.New("restclient: endpoint not implemented")

// NotImplementedError carries the request a Stub composed but did not send.
type NotImplementedError struct {
	Method  string
	URL     string
	Payload Payload
}

// Error renders "<METHOD> Endpoint: <url>", plus " payload=<json>" for POST.
func (e *NotImplementedError) Error() string {
	msg := fmt.Sprintf("%s Endpoint: %s", e.Method, e.URL)
	if e.Method == methodPost {
		msg += " payload=" + payloadText(e.Payload)
	}
	return msg
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

func payloadText(payload Payload) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(payload))
	}
	return string(data)
}
