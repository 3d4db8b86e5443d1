package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/vtex"
	"vtex-sankhya-sync/internal/domain/model"
)

type SyncPartnerService interface {
	// Run resolves the buyer of one VTEX order into a Sankhya partner
	// code, creating or refreshing the partner on the way.
	Run(ctx context.Context, orderID string) (string, error)
}

// PartnerRegistry is the slice of the Sankhya client the partner sync
// needs.
type PartnerRegistry interface {
	FindPartnerCode(ctx context.Context, taxID string) (string, error)
	ResolveAddressCodes(ctx context.Context, p model.Partner) (model.PartnerCodes, error)
	UpdatePartner(ctx context.Context, code string, p model.Partner, codes model.PartnerCodes) (bool, error)
	UpdatePartnerDelivery(ctx context.Context, code string, p model.Partner, codes model.PartnerCodes) (bool, error)
	InsertPartner(ctx context.Context, p model.Partner, codes model.PartnerCodes) (bool, error)
}

type partnerSync struct {
	vtexClient vtex.OrderService
	registry   PartnerRegistry
	log        *zap.Logger
}

func NewSyncPartner(vtexClient vtex.OrderService, registry PartnerRegistry, log *zap.Logger) SyncPartnerService {
	return &partnerSync{
		vtexClient: vtexClient,
		registry:   registry,
		log:        log,
	}
}

func (s *partnerSync) Run(ctx context.Context, orderID string) (string, error) {
	_, partner, err := s.vtexClient.FetchOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if partner.TaxID == "" {
		return "", fmt.Errorf("order %s carries no buyer tax id", orderID)
	}

	codes, err := s.registry.ResolveAddressCodes(ctx, partner)
	if err != nil {
		return "", err
	}

	code, err := s.registry.FindPartnerCode(ctx, partner.TaxID)
	if err != nil {
		return "", err
	}

	if code != "" {
		return code, s.refresh(ctx, code, partner, codes)
	}
	return s.insert(ctx, partner, codes)
}

// refresh rewrites the existing record. A rejected save is logged and
// swallowed: the stale partner still has a valid code, and the order
// stages after this one are worth more than a perfect address.
func (s *partnerSync) refresh(ctx context.Context, code string, partner model.Partner, codes model.PartnerCodes) error {
	if codes.Street == "" {
		s.log.Warn("street did not resolve, updating partner without address code",
			zap.String("street", partner.Street),
			zap.String("code", code),
		)
	}

	ok, err := s.registry.UpdatePartner(ctx, code, partner, codes)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Error("partner basic update rejected, continuing", zap.String("code", code))
	}

	ok, err = s.registry.UpdatePartnerDelivery(ctx, code, partner, codes)
	if err != nil {
		return err
	}
	if !ok {
		s.log.Error("partner delivery update rejected, continuing", zap.String("code", code))
	}
	return nil
}

// insert creates the partner and re-fetches the code the ERP assigned.
// An unresolved street is a hard error here: record creation must not
// fall back to an empty address code.
func (s *partnerSync) insert(ctx context.Context, partner model.Partner, codes model.PartnerCodes) (string, error) {
	if codes.Street == "" {
		return "", fmt.Errorf("cannot create partner %s: street %q did not resolve", partner.TaxID, partner.Street)
	}

	ok, err := s.registry.InsertPartner(ctx, partner, codes)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("partner insert rejected for tax id %s", partner.TaxID)
	}

	code, err := s.registry.FindPartnerCode(ctx, partner.TaxID)
	if err != nil {
		return "", err
	}
	if code == "" {
		return "", fmt.Errorf("partner %s inserted but absent on re-fetch", partner.TaxID)
	}
	s.log.Info("partner created", zap.String("tax_id", partner.TaxID), zap.String("code", code))
	return code, nil
}
