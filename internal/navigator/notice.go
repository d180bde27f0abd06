package navigator

// NoticeKind is the tone of a notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a one-shot message for the user. Key is the translation key,
// Text the message already resolved in the locale current when it was
// raised.
type Notice struct {
	Kind NoticeKind
	Key  string
	Text string
}

func (c *Controller) notify(kind NoticeKind, key string, args ...string) {
	c.notices = append(c.notices, Notice{Kind: kind, Key: key, Text: c.tr.T(key, args...)})
}

// TakeNotice removes and returns the oldest pending notice.
func (c *Controller) TakeNotice() (Notice, bool) {
	if len(c.notices) == 0 {
		return Notice{}, false
	}
	n := c.notices[0]
	c.notices = c.notices[1:]
	return n, true
}
