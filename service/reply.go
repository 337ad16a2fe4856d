package service

const (
	DefaultReply = "Έλαβα το μήνυμά σου!"
)

// nolint:gochecknoglobals
var replyFields = []string{"reply", "output", "text"}

func PickReply(data any) string {
	object, ok := data.(map[string]any)
	if !ok {
		return DefaultReply
	}
	for _, field := range replyFields {
		value, ok := object[field].(string)
		if ok && value != "" {
			return value
		}
	}
	return DefaultReply
}
