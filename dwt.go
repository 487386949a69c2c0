package jpeg2000

import (
	"context"
	"fmt"

	"github.com/cocosip/go-jpeg2000-dwt/internal/dwt"
)

// Rect and Logger are re-exported from internal/dwt so callers never need
// to name the internal package themselves (spec.md §6, "internal library;
// its 'external' surface is the contracts to its in-process
// collaborators").
type (
	Rect   = dwt.Rect
	Logger = dwt.Logger
)

// TileComponentParams configures one tile-component's transform (spec.md
// SPEC_FULL §3): the struct-literal configuration style the teacher uses
// for QuantizationParams/ROIParams, rather than a builder or functional
// options.
type TileComponentParams struct {
	Width, Height  int
	NumResolutions int
	Reversible     bool // true: 5/3 integer; false: 9/7 float
	Precision      int
	DisableMT      bool
}

func (p TileComponentParams) validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.NumResolutions <= 0 {
		return fmt.Errorf("%w: width=%d height=%d numResolutions=%d", dwt.ErrInvalidParams, p.Width, p.Height, p.NumResolutions)
	}
	return nil
}

func (p TileComponentParams) tile() Rect {
	return Rect{X0: 0, Y0: 0, X1: p.Width, Y1: p.Height}
}

// TileComponent is a full, dense tile-component buffer: one channel of one
// tile, the unit of independent DWT computation (spec.md GLOSSARY). Only
// one of I32/F32 is populated, matching Params.Reversible.
type TileComponent struct {
	Params TileComponentParams
	I32    []int32
	F32    []float32
}

// Decode runs the full inverse DWT over tc in place (spec.md §6.2's
// decode(tile_component, num_res, whole_tile=true)). If pool is non-nil
// and tc.Params.DisableMT is false, the vertical/horizontal passes are
// striped across pool's workers; otherwise it runs on the calling
// goroutine.
func Decode(tc *TileComponent, pool *dwt.WorkerPool) error {
	if err := tc.Params.validate(); err != nil {
		return err
	}
	tile := tc.Params.tile()

	if tc.Params.Reversible {
		buf := &dwt.TileBuffer[int32]{Data: tc.I32, Stride: tc.Params.Width}
		if pool != nil && !tc.Params.DisableMT {
			return dwt.DecodeParallel(context.Background(), pool, dwt.Kernels53, buf, tile, tc.Params.NumResolutions)
		}
		dwt.Decode(dwt.Kernels53, buf, tile, tc.Params.NumResolutions)
		return nil
	}

	buf := &dwt.TileBuffer[float32]{Data: tc.F32, Stride: tc.Params.Width}
	if pool != nil && !tc.Params.DisableMT {
		return dwt.DecodeParallel(context.Background(), pool, dwt.Kernels97, buf, tile, tc.Params.NumResolutions)
	}
	dwt.Decode(dwt.Kernels97, buf, tile, tc.Params.NumResolutions)
	return nil
}

// Encode runs the full forward DWT over tc in place (spec.md §6.2).
func Encode(tc *TileComponent, pool *dwt.WorkerPool) error {
	if err := tc.Params.validate(); err != nil {
		return err
	}
	tile := tc.Params.tile()

	if tc.Params.Reversible {
		buf := &dwt.TileBuffer[int32]{Data: tc.I32, Stride: tc.Params.Width}
		if pool != nil && !tc.Params.DisableMT {
			return dwt.EncodeParallel(context.Background(), pool, dwt.Kernels53, buf, tile, tc.Params.NumResolutions)
		}
		dwt.Encode(dwt.Kernels53, buf, tile, tc.Params.NumResolutions)
		return nil
	}

	buf := &dwt.TileBuffer[float32]{Data: tc.F32, Stride: tc.Params.Width}
	if pool != nil && !tc.Params.DisableMT {
		return dwt.EncodeParallel(context.Background(), pool, dwt.Kernels97, buf, tile, tc.Params.NumResolutions)
	}
	dwt.Encode(dwt.Kernels97, buf, tile, tc.Params.NumResolutions)
	return nil
}

// WorkerPoolConfig controls how DecodeTile/EncodeTile parallelize across
// multiple components (SPEC_FULL §4.9).
type WorkerPoolConfig struct {
	DisableMT bool
	// Shared, when true, dispatches every component's passes through one
	// WorkerPool instance; when false (default), each component gets its
	// own pool. Either way the components are transformed one after
	// another; only the passes within a component run in parallel.
	Shared bool
}

// DecodeTile is the supplemental multi-component convenience driver
// SPEC_FULL §4.9 adds: fan out Decode across every component of a tile.
// Each component's transform is independent, so a failure on one
// component doesn't stop the others from finishing. A single failure is
// returned as is; several are reported as one error carrying the failure
// count and wrapping only the first error.
func DecodeTile(components []*TileComponent, cfg WorkerPoolConfig) error {
	var shared *dwt.WorkerPool
	if cfg.Shared {
		shared = dwt.NewWorkerPool()
		shared.DisableMT = cfg.DisableMT
	}

	errs := make([]error, len(components))
	for i, tc := range components {
		pool := shared
		if pool == nil {
			pool = dwt.NewWorkerPool()
			pool.DisableMT = cfg.DisableMT
		}
		errs[i] = Decode(tc, pool)
	}
	return joinErrors(errs)
}

// EncodeTile is DecodeTile's forward-path counterpart.
func EncodeTile(components []*TileComponent, cfg WorkerPoolConfig) error {
	var shared *dwt.WorkerPool
	if cfg.Shared {
		shared = dwt.NewWorkerPool()
		shared.DisableMT = cfg.DisableMT
	}

	errs := make([]error, len(components))
	for i, tc := range components {
		pool := shared
		if pool == nil {
			pool = dwt.NewWorkerPool()
			pool.DisableMT = cfg.DisableMT
		}
		errs[i] = Encode(tc, pool)
	}
	return joinErrors(errs)
}

func joinErrors(errs []error) error {
	var first error
	count := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		count++
		if first == nil {
			first = err
		}
	}
	if count == 0 {
		return nil
	}
	if count == 1 {
		return first
	}
	return fmt.Errorf("jpeg2000: %d of %d components failed, first error: %w", count, len(errs), first)
}

// PartialArrayI32 and PartialArrayF32 expose dwt.PartialArray's windowed
// decode path (spec.md §4.5, §6.2's whole_tile=false case) without
// requiring callers to name the internal package or instantiate a generic
// type themselves.
type (
	PartialArrayI32 struct{ a *dwt.PartialArray[int32] }
	PartialArrayF32 struct{ a *dwt.PartialArray[float32] }
)

// NewPartialArrayI32 allocates sparse reversible-path storage for a tile
// with the given parameters.
func NewPartialArrayI32(p TileComponentParams) (*PartialArrayI32, error) {
	a, err := dwt.NewPartialArray[int32](p.tile(), p.NumResolutions)
	if err != nil {
		return nil, err
	}
	return &PartialArrayI32{a: a}, nil
}

// NewPartialArrayF32 allocates sparse irreversible-path storage.
func NewPartialArrayF32(p TileComponentParams) (*PartialArrayF32, error) {
	a, err := dwt.NewPartialArray[float32](p.tile(), p.NumResolutions)
	if err != nil {
		return nil, err
	}
	return &PartialArrayF32{a: a}, nil
}

// Underlying exposes the backing sparse array so an (out-of-scope)
// entropy decoder can seed code-block samples before DecodeWindow runs.
func (p *PartialArrayI32) Underlying() *dwt.PartialArray[int32] {
	return p.a
}

// Underlying is PartialArrayF32's counterpart.
func (p *PartialArrayF32) Underlying() *dwt.PartialArray[float32] {
	return p.a
}

// DecodeWindow runs the windowed inverse 5/3 transform for win (tile
// coordinates) and reads the result into dst.
func (p *PartialArrayI32) DecodeWindow(params TileComponentParams, win Rect, log Logger, dst []int32) {
	dwt.DecodeWindow(dwt.Kernels53, p.a, params.tile(), win, params.NumResolutions, log)
	p.a.ReadWindow(win, dst)
}

// DecodeWindow runs the windowed inverse 9/7 transform for win and reads
// the result into dst.
func (p *PartialArrayF32) DecodeWindow(params TileComponentParams, win Rect, log Logger, dst []float32) {
	dwt.DecodeWindow(dwt.Kernels97, p.a, params.tile(), win, params.NumResolutions, log)
	p.a.ReadWindow(win, dst)
}
