package outbound

import "context"

// TranscriberPort turns a remote audio object into flat transcript text.
type TranscriberPort interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}
