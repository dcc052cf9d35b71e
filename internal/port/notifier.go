package port

import "github.com/rl1809/smart-pos/internal/core/domain"

type Notifier interface {
	Notify(notice domain.Notice)
}

// CartPublisher receives a snapshot after every cart mutation.
type CartPublisher interface {
	PublishCart(view domain.CartView)
}
