package services

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"modublock/internal/domain"
	"modublock/internal/repos"
)

var (
	ErrAlreadyDecided = errors.New("application already decided")
	ErrUnknownPartner = errors.New("partner not found")
)

// Monthly subscription fee by tier, charged from approval.
var tierFees = map[string]float64{
	"standard":   150,
	"premium":    450,
	"enterprise": 1200,
}

type PartnerService struct {
	Partners *repos.PartnerRepo
}

func NewPartnerService(partners *repos.PartnerRepo) *PartnerService {
	return &PartnerService{Partners: partners}
}

// Apply files a partner application. New applications always start
// PENDING; the fee follows the requested tier.
func (s *PartnerService) Apply(name, location, contact, tier string, capacity int) (domain.Partner, error) {
	fee, ok := tierFees[tier]
	if !ok {
		tier = "standard"
		fee = tierFees[tier]
	}
	p := domain.Partner{
		ID:                 "ptn-" + uuid.NewString(),
		Name:               name,
		Location:           location,
		Contact:            contact,
		Status:             domain.PartnerPending,
		Tier:               tier,
		SubscriptionFee:    fee,
		ProductionCapacity: capacity,
	}
	if err := s.Partners.Create(p); err != nil {
		return domain.Partner{}, err
	}
	return p, nil
}

// Decide approves or rejects exactly once. A second decision, or a
// decision on an unknown partner, fails without touching the row.
func (s *PartnerService) Decide(id string, approve bool) (domain.Partner, error) {
	status := domain.PartnerRejected
	if approve {
		status = domain.PartnerApproved
	}
	changed, err := s.Partners.Decide(id, status)
	if err != nil {
		return domain.Partner{}, err
	}
	if !changed {
		if _, err := s.Partners.Get(id); err == sql.ErrNoRows {
			return domain.Partner{}, ErrUnknownPartner
		}
		return domain.Partner{}, ErrAlreadyDecided
	}
	return s.Partners.Get(id)
}

func (s *PartnerService) List(status string) ([]domain.Partner, error) {
	return s.Partners.List(status)
}

func (s *PartnerService) Get(id string) (domain.Partner, error) {
	p, err := s.Partners.Get(id)
	if err == sql.ErrNoRows {
		return domain.Partner{}, ErrUnknownPartner
	}
	return p, err
}

// RecordStats updates the operational figures an approved partner
// reports from its dashboard.
func (s *PartnerService) RecordStats(id string, revenue float64, fleet, capacity int) error {
	if _, err := s.Partners.Get(id); err != nil {
		if err == sql.ErrNoRows {
			return ErrUnknownPartner
		}
		return err
	}
	return s.Partners.UpsertStats(id, revenue, fleet, capacity)
}
