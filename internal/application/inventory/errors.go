package inventory

import (
	"errors"

	"github.com/jhoicas/zoo-api/internal/domain"
)

func isInsufficient(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock)
}
