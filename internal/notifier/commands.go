package notifier

import "strings"

// Command is a parsed chat command such as "/predict 3 2.5,3,3.5".
type Command struct {
	Name string // lower-case, without the leading slash or @bot suffix
	Args string
}

// ParseCommand splits a chat message into command name and argument text.
// Messages that do not start with "/" produce an empty Name.
func ParseCommand(text string) Command {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return Command{Args: text}
	}
	name, args, _ := strings.Cut(text[1:], " ")
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return Command{Name: strings.ToLower(name), Args: strings.TrimSpace(args)}
}
