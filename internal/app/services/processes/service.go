// Package processes is the process facade. Processes form hierarchies
// through ProcessHierarchy relationships.
package processes

import (
	"context"

	"github.com/odpi/itinfra/internal/app/domain/elements"
	"github.com/odpi/itinfra/internal/app/domain/enums"
	"github.com/odpi/itinfra/internal/app/domain/properties"
	"github.com/odpi/itinfra/internal/app/handlers"
	"github.com/odpi/itinfra/internal/app/storage"
	"github.com/odpi/itinfra/internal/app/types"
	"github.com/odpi/itinfra/pkg/logger"
)

// Service manages processes.
type Service struct {
	handler *handlers.ElementHandler
	log     *logger.Logger
}

// New constructs a process service.
func New(handler *handlers.ElementHandler, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("processes")
	}
	return &Service{handler: handler, log: log}
}

// CreateProcess creates a process in the given initial status.
func (s *Service) CreateProcess(ctx context.Context, userID string, props properties.ProcessProperties, status enums.ProcessStatus, src handlers.ExternalSource) (string, error) {
	guid, err := s.handler.CreateBean(ctx, userID, types.Process, types.Process, props, status.ElementStatus(), src, "createProcess")
	if err != nil {
		return "", err
	}
	s.log.WithField("guid", guid).WithField("status", status.String()).Info("process created")
	return guid, nil
}

// UpdateProcess updates a process.
func (s *Service) UpdateProcess(ctx context.Context, userID, guid string, merge bool, props properties.ProcessProperties, fields ...string) error {
	return s.handler.UpdateBean(ctx, userID, guid, types.Process, props, merge, "updateProcess", fields...)
}

// UpdateProcessStatus changes the lifecycle status of a process.
func (s *Service) UpdateProcessStatus(ctx context.Context, userID, guid string, status enums.ProcessStatus) error {
	return s.handler.UpdateStatus(ctx, userID, guid, types.Process, status.ElementStatus(), "updateProcessStatus")
}

// RemoveProcess deletes a process and its relationships. Child processes
// are left in place.
func (s *Service) RemoveProcess(ctx context.Context, userID, guid string) error {
	return s.handler.DeleteElement(ctx, userID, guid, types.Process, "removeProcess")
}

// GetProcess returns one process.
func (s *Service) GetProcess(ctx context.Context, userID, guid string) (elements.ProcessElement, error) {
	e, err := s.handler.GetElement(ctx, userID, guid, types.Process, "getProcess")
	if err != nil {
		return elements.ProcessElement{}, err
	}
	return s.toElement(e)
}

// FindProcesses returns the processes with a property value matching search.
func (s *Service) FindProcesses(ctx context.Context, userID, search string, startFrom, pageSize int) ([]elements.ProcessElement, error) {
	if err := handlers.ValidateName(search, "searchString", "findProcesses"); err != nil {
		return nil, err
	}
	found, err := s.handler.FindElements(ctx, userID, types.Process, search, nil, startFrom, pageSize, "findProcesses")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// GetProcessesByName returns the processes whose qualifiedName or name is name.
func (s *Service) GetProcessesByName(ctx context.Context, userID, name string, startFrom, pageSize int) ([]elements.ProcessElement, error) {
	found, err := s.handler.GetElementsByName(ctx, userID, types.Process, name, startFrom, pageSize, "getProcessesByName")
	if err != nil {
		return nil, err
	}
	return s.toElements(found)
}

// SetupProcessParent makes parentGUID the parent of childGUID.
func (s *Service) SetupProcessParent(ctx context.Context, userID, parentGUID, childGUID string, props properties.ProcessContainmentProperties) (string, error) {
	return s.handler.LinkBean(ctx, userID, types.ProcessHierarchy, parentGUID, childGUID, props, "setupProcessParent")
}

// ClearProcessParent removes the parent link between two processes.
func (s *Service) ClearProcessParent(ctx context.Context, userID, parentGUID, childGUID string) error {
	return s.handler.UnlinkElements(ctx, userID, types.ProcessHierarchy, parentGUID, childGUID, "clearProcessParent")
}

// GetSubprocesses returns the direct children of a process.
func (s *Service) GetSubprocesses(ctx context.Context, userID, parentGUID string, startFrom, pageSize int) ([]elements.ProcessElement, error) {
	related, err := s.handler.GetRelatedElements(ctx, userID, parentGUID, types.ProcessHierarchy, 1, types.Process, startFrom, pageSize, "getSubprocesses")
	if err != nil {
		return nil, err
	}
	found := make([]storage.Entity, 0, len(related))
	for _, r := range related {
		found = append(found, r.Entity)
	}
	return s.toElements(found)
}

func (s *Service) toElement(e storage.Entity) (elements.ProcessElement, error) {
	var props properties.ProcessProperties
	if err := handlers.FromEntity(e, &props); err != nil {
		return elements.ProcessElement{}, err
	}
	return elements.ProcessElement{ElementHeader: s.handler.Header(e), Properties: props}, nil
}

func (s *Service) toElements(found []storage.Entity) ([]elements.ProcessElement, error) {
	if len(found) == 0 {
		return nil, nil
	}
	out := make([]elements.ProcessElement, 0, len(found))
	for _, e := range found {
		el, err := s.toElement(e)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}
