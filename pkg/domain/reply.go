package domain

// QuickReply is a suggested response button rendered by the chat transport.
// Label is what the user sees; Value is what is sent back when tapped.
type QuickReply struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Response is the outbound half of one conversation turn.
type Response struct {
	Text         string       `json:"text"`
	QuickReplies []QuickReply `json:"quick_replies,omitempty"`
}

// Reply builds a Response from text and label/value pairs.
// Pairs must come in twos; a trailing odd label gets itself as value.
func Reply(text string, pairs ...string) Response {
	r := Response{Text: text}
	for i := 0; i < len(pairs); i += 2 {
		qr := QuickReply{Label: pairs[i], Value: pairs[i]}
		if i+1 < len(pairs) {
			qr.Value = pairs[i+1]
		}
		r.QuickReplies = append(r.QuickReplies, qr)
	}
	return r
}
