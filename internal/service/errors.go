package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nc-news-api/internal/apperr"
	"github.com/nc-news-api/internal/repository"
)

// classifyWrite maps store failures on article and comment writes.
// An author foreign key failure means the posting user is unknown; any other
// foreign key failure means the parent row vanished after the existence check.
func classifyWrite(err error, parent, action string) error {
	switch {
	case errors.Is(err, repository.ErrForeignKeyViolation):
		if strings.Contains(repository.ViolatedConstraint(err), "author") {
			return apperr.ErrUnableToIdentifyUser
		}
		return apperr.NotFound(parent)
	case errors.Is(err, repository.ErrInvalidInput):
		return apperr.BadRequest(err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
