// Package feedback manages the comments attached to IT infrastructure
// elements. A reply is a comment attached to another comment.
package feedback

import (
	"context"

	"github.com/google/uuid"

	"github.com/odpi/itinfra/internal/app/domain/elements"
	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/app/types"
	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/pkg/logger"
)

// maxReplyDepth bounds the reply tree walked by GetAttachedComments and
// RemoveComment.
const maxReplyDepth = 32

// Service manages comments.
type Service struct {
	handler *handlers.ElementHandler
	log     *logger.Logger
}

// New constructs a feedback service.
func New(handler *handlers.ElementHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("feedback")
	}
	return &Service{handler: handler, log: log}
}

// AddComment attaches a comment to anchorGUID, which may itself be a comment.
// A missing qualifiedName is generated.
func (s *Service) AddComment(ctx context.Context, userID, anchorGUID string, props properties.CommentProperties, src handlers.ExternalSource) (string, error) {
	const op = "addCommentToElement"
	if err := handlers.ValidateGUID(anchorGUID, "elementGUID", op); err != nil {
		return "", err
	}
	if props.CommentText == "" {
		return "", errors.NullParameter("commentText", op)
	}
	if _, err := s.handler.GetElement(ctx, userID, anchorGUID, types.Referenceable, op); err != nil {
		return "", err
	}
	if props.QualifiedName == "" {
		props.QualifiedName = "Comment:" + uuid.NewString()
	}
	guid, err := s.handler.CreateBean(ctx, userID, types.Comment, types.Comment, props, enums.ElementStatusActive, src, op)
	if err != nil {
		return "", err
	}
	if _, err := s.handler.LinkElements(ctx, userID, types.AttachedComment, anchorGUID, guid, nil, op); err != nil {
		if cleanup := s.handler.DeleteElement(ctx, userID, guid, types.Comment, op); cleanup != nil {
			s.log.WithError(cleanup).WithField("guid", guid).Warn("failed to remove unattached comment")
		}
		return "", err
	}
	return guid, nil
}

// UpdateComment changes a comment. Only its creator may update it.
func (s *Service) UpdateComment(ctx context.Context, userID, guid string, merge bool, props properties.CommentProperties, fields ...string) error {
	const op = "updateComment"
	e, err := s.handler.GetElement(ctx, userID, guid, types.Comment, op)
	if err != nil {
		return err
	}
	if e.CreatedBy != userID {
		return errors.UserNotAuthorized(userID, op)
	}
	return s.handler.UpdateBean(ctx, userID, guid, types.Comment, props, merge, op, fields...)
}

// RemoveComment deletes a comment and all of its replies. Only its creator
// may remove it.
func (s *Service) RemoveComment(ctx context.Context, userID, guid string) error {
	const op = "removeComment"
	e, err := s.handler.GetElement(ctx, userID, guid, types.Comment, op)
	if err != nil {
		return err
	}
	if e.CreatedBy != userID {
		return errors.UserNotAuthorized(userID, op)
	}
	return s.remove(ctx, userID, guid, 0, op)
}

// GetComment returns one comment with its replies.
func (s *Service) GetComment(ctx context.Context, userID, guid string) (elements.CommentElement, error) {
	const op = "getComment"
	e, err := s.handler.GetElement(ctx, userID, guid, types.Comment, op)
	if err != nil {
		return elements.CommentElement{}, err
	}
	if !readable(e, userID) {
		return elements.CommentElement{}, errors.NotFound(types.Comment, guid)
	}
	return s.toElement(ctx, userID, e, 0, op)
}

// GetAttachedComments returns the comments attached to anchorGUID with their
// replies nested beneath them. Private comments are returned only to their
// creator.
func (s *Service) GetAttachedComments(ctx context.Context, userID, anchorGUID string, startFrom, pageSize int) ([]elements.CommentElement, error) {
	const op = "getAttachedComments"
	return s.comments(ctx, userID, anchorGUID, startFrom, pageSize, 0, op)
}

func (s *Service) comments(ctx context.Context, userID, anchorGUID string, startFrom, pageSize, depth int, op string) ([]elements.CommentElement, error) {
	canRead := func(e storage.Entity) bool { return readable(e, userID) }
	related, err := s.handler.GetRelatedElementsWhere(ctx, userID, anchorGUID, types.AttachedComment, 1, types.Comment, canRead, startFrom, pageSize, op)
	if err != nil {
		return nil, err
	}
	var out []elements.CommentElement
	for _, r := range related {
		el, err := s.toElement(ctx, userID, r.Entity, depth, op)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func (s *Service) toElement(ctx context.Context, userID string, e storage.Entity, depth int, op string) (elements.CommentElement, error) {
	out := elements.CommentElement{ElementHeader: s.handler.Header(e)}
	if err := handlers.FromEntity(e, &out.Properties); err != nil {
		return elements.CommentElement{}, err
	}
	if depth >= maxReplyDepth {
		return out, nil
	}
	replies, err := s.comments(ctx, userID, e.GUID, 0, 0, depth+1, op)
	if err != nil {
		return elements.CommentElement{}, err
	}
	out.Replies = replies
	return out, nil
}

func (s *Service) remove(ctx context.Context, userID, guid string, depth int, op string) error {
	if depth < maxReplyDepth {
		replies, err := s.handler.GetRelatedElements(ctx, userID, guid, types.AttachedComment, 1, types.Comment, 0, 0, op)
		if err != nil {
			return err
		}
		for _, r := range replies {
			if err := s.remove(ctx, userID, r.Entity.GUID, depth+1, op); err != nil {
				return err
			}
		}
	}
	return s.handler.DeleteElement(ctx, userID, guid, types.Comment, op)
}

func readable(e storage.Entity, userID string) bool {
	public, _ := e.Properties["isPublic"].(bool)
	return public || e.CreatedBy == userID
}
