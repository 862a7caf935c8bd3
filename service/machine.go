package service

import (
	"context"
	"strings"

	"github.com/s0up4200/pokedex/pokeapi"
)

// MachineDetails is the flat view of a machine.
type MachineDetails struct {
	ID           int    `json:"id"`
	Item         string `json:"item"`
	Move         string `json:"move"`
	VersionGroup string `json:"version_group"`
}

// MachineService covers TMs and HMs.
type MachineService struct {
	Machines *Resource[pokeapi.Machine]
}

// NewMachineService creates a MachineService.
func NewMachineService(base *Base) *MachineService {
	return &MachineService{
		Machines: NewResource[pokeapi.Machine](base, Descriptor{Endpoint: pokeapi.EndpointMachine, Label: "machine"}),
	}
}

// Details fetches a machine by ID and flattens it.
func (s *MachineService) Details(ctx context.Context, id int) (*MachineDetails, error) {
	m, err := s.Machines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return SummarizeMachine(m), nil
}

// SummarizeMachine flattens a machine.
func SummarizeMachine(m *pokeapi.Machine) *MachineDetails {
	return &MachineDetails{
		ID:           m.ID,
		Item:         m.Item.Name,
		Move:         m.Move.Name,
		VersionGroup: m.VersionGroup.Name,
	}
}

// ByVersionGroup samples machines and keeps those of a version group.
func (s *MachineService) ByVersionGroup(ctx context.Context, versionGroup string, sample int) ([]*MachineDetails, error) {
	versionGroup = strings.ToLower(strings.TrimSpace(versionGroup))
	if err := s.Machines.base.ValidateIdentifier(versionGroup, "version group"); err != nil {
		return nil, err
	}

	machines, err := s.Machines.FilterSample(ctx, sample, func(m *pokeapi.Machine) bool {
		return m.VersionGroup.Name == versionGroup
	})
	if err != nil {
		return nil, err
	}

	details := make([]*MachineDetails, len(machines))
	for i, m := range machines {
		details[i] = SummarizeMachine(m)
	}
	return details, nil
}
