package entities

// NoticeField is one name/value pair rendered inside a notice
type NoticeField struct {
	Name   string
	Value  string
	Inline bool
}

// Notice is a platform-neutral rich message payload. The transport layer
// renders it into whatever embed format the chat platform expects.
type Notice struct {
	Title        string
	Description  string
	Fields       []NoticeField
	ThumbnailURL string
	FooterText   string
}
