package contact

import "context"

type ContactNotifier interface {
	ContactAdmins(ctx context.Context, name, email, message string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
