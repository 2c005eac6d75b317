package services

import "modublock/internal/repos"

type ShortlistService struct {
	Repo *repos.ShortlistRepo
}

func NewShortlistService(r *repos.ShortlistRepo) *ShortlistService { return &ShortlistService{Repo: r} }

func (s *ShortlistService) Save(sessionID, productID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Save(id, productID)
}

func (s *ShortlistService) Unsave(sessionID, productID string) error {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Repo.Unsave(id, productID)
}

func (s *ShortlistService) List(sessionID string) ([]repos.ShortlistRow, error) {
	id, err := s.Repo.Ensure(sessionID)
	if err != nil {
		return nil, err
	}
	return s.Repo.List(id)
}
