package store

import (
	"context"

	"github.com/FlagBrew/pokemon-commons/internal/database/pokedex"
	"golang.org/x/sync/errgroup"
)

// graphConcurrency bounds the number of queries Graph runs at once.
const graphConcurrency = 4

// PokemonGraph is a species together with every collection it owns.
type PokemonGraph struct {
	pokedex.Pokemon

	RegionalNumbers   []pokedex.PokemonDex       `json:"regional_numbers"`
	EggGroups         []pokedex.EggGroup         `json:"egg_groups"`
	MegaStonePictures []pokedex.MegaStonePicture `json:"mega_stone_pictures"`
	Forms             []FormGraph                `json:"forms"`
}

// FormGraph is a form with its ability and type assignments.
type FormGraph struct {
	pokedex.Form

	Abilities []AbilityAssignment `json:"abilities"`
	Types     []TypeAssignment    `json:"types"`
}

// Graph loads a species and all of its owned collections.
func (s *Store) Graph(ctx context.Context, nationalDex int) (*PokemonGraph, error) {
	p, err := s.Pokemon(ctx, nationalDex)
	if err != nil {
		return nil, err
	}
	g := &PokemonGraph{Pokemon: *p}

	var forms []pokedex.Form
	eg, gctx := s.group(ctx)
	eg.Go(func() (err error) {
		g.RegionalNumbers, err = s.RegionalNumbers(gctx, nationalDex)
		return err
	})
	eg.Go(func() (err error) {
		g.EggGroups, err = s.EggGroups(gctx, nationalDex)
		return err
	})
	eg.Go(func() (err error) {
		g.MegaStonePictures, err = s.MegaStonePictures(gctx, nationalDex)
		return err
	})
	eg.Go(func() (err error) {
		forms, err = s.Forms(gctx, nationalDex)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.Forms = make([]FormGraph, len(forms))
	eg, gctx = s.group(ctx)
	for i, f := range forms {
		g.Forms[i].Form = f
		eg.Go(func() (err error) {
			g.Forms[i].Abilities, err = s.FormAbilities(gctx, f.ID)
			return err
		})
		eg.Go(func() (err error) {
			g.Forms[i].Types, err = s.FormTypes(gctx, f.ID)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

// group returns an errgroup sized for the store. A transaction holds a single
// connection, so its queries run one at a time.
func (s *Store) group(ctx context.Context) (*errgroup.Group, context.Context) {
	eg, gctx := errgroup.WithContext(ctx)
	if s.drv == nil {
		eg.SetLimit(1)
	} else {
		eg.SetLimit(graphConcurrency)
	}
	return eg, gctx
}
