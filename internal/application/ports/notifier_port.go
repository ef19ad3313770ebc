package ports

// Notifier empuja eventos en tiempo real a los clientes conectados de un usuario.
type Notifier interface {
	Notify(userID string, eventType string, data any)
}
