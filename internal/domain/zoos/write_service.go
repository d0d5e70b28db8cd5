package zoos

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"zoo-registry/internal/platform/logger"
	"zoo-registry/internal/platform/mail"
)

type WriteService struct {
	repo   Repository
	read   *ReadService
	mailer mail.Mailer
	log    logger.Logger
}

func NewWriteService(repo Repository, read *ReadService, mailer mail.Mailer, log logger.Logger) *WriteService {
	return &WriteService{repo: repo, read: read, mailer: mailer, log: log}
}

// Create persiste el zoo con su dirección y animales anidados y devuelve el
// id generado. El chequeo previo de designation solo produce el error
// amigable; la garantía real es la constraint UNIQUE, cuya violación se
// mapea igual a ErrDesignationExists en el repositorio.
func (s *WriteService) Create(ctx context.Context, z Zoo) (int64, error) {
	if strings.TrimSpace(z.Designation) == "" || z.Address == nil {
		return 0, ErrInvalidInput
	}
	if z.EntranceFee.IsNegative() {
		return 0, ErrInvalidInput
	}

	exists, err := s.repo.ExistsByDesignation(ctx, z.Designation)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrDesignationExists, z.Designation)
	}

	saved, err := s.repo.Create(ctx, z)
	if err != nil {
		return 0, err
	}

	s.sendmail(ctx, saved)
	return saved.ID, nil
}

// Update mergea los campos core presentes en el patch sobre el zoo
// persistido si el token de versión coincide; un campo ausente conserva su
// valor. El guard efectivo es el update condicional del repositorio; la
// comparación previa solo sirve para devolverle al cliente la versión
// vigente. Devuelve la versión nueva.
func (s *WriteService) Update(ctx context.Context, id int64, patch CorePatch, versionToken string) (int64, error) {
	version, err := strconv.ParseInt(versionToken, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrVersionInvalid, versionToken)
	}

	current, err := s.read.FindByID(ctx, id, false)
	if err != nil {
		return 0, err
	}
	if version != current.Version {
		return 0, &VersionOutdatedError{Current: current.Version}
	}

	core := patch.applyTo(current)
	if strings.TrimSpace(core.Designation) == "" || core.EntranceFee.IsNegative() {
		return 0, ErrInvalidInput
	}

	newVersion, err := s.repo.UpdateCore(ctx, id, core, version)
	if err == nil {
		return newVersion, nil
	}
	if !errors.Is(err, ErrVersionConflict) {
		return 0, err
	}

	// El CAS no afectó filas: otro update ganó entre la lectura y la
	// escritura, o el zoo desapareció.
	fresh, readErr := s.read.FindByID(ctx, id, false)
	if readErr != nil {
		return 0, readErr
	}
	return 0, &VersionOutdatedError{Current: fresh.Version}
}

// Delete borra el zoo con su dirección y todos sus animales en una
// transacción; un fallo en cualquier punto revierte todo. NotFound del
// lookup inicial se propaga, no se traga.
func (s *WriteService) Delete(ctx context.Context, id int64) (bool, error) {
	if _, err := s.read.FindByID(ctx, id, true); err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, id)
}

func (s *WriteService) sendmail(ctx context.Context, z Zoo) {
	n := mail.Notification{
		Subject: fmt.Sprintf("new zoo %d", z.ID),
		Body:    fmt.Sprintf("zoo with the name <strong>%s</strong> is created", z.Designation),
	}
	if err := s.mailer.Send(ctx, n); err != nil {
		// best-effort: el create ya está commiteado, solo se loguea
		s.log.Error("zoo notification mail failed", map[string]any{
			"zooId": z.ID,
			"error": err.Error(),
		})
	}
}
