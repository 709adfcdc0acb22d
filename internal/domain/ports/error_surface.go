package ports

// ErrorSurface shows a blocking, user-visible error for a failed attempt
type ErrorSurface interface {
	ShowError(title, message string)
}
