package domain

import (
	"strings"
	"time"

	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
	pstrings "stablehand/pkg/platform/strings"
)

// Season classifies when a paddock is in use.
type Season string

const (
	SeasonSummer  Season = "summer"
	SeasonWinter  Season = "winter"
	SeasonAllYear Season = "allYear"
)

var validSeasons = map[Season]bool{
	SeasonSummer:  true,
	SeasonWinter:  true,
	SeasonAllYear: true,
}

// IsValid checks whether the season is one of the supported values.
func (s Season) IsValid() bool {
	return validSeasons[s]
}

// PaddockImage is an optional image reference: either an inline payload with
// its mime type, or a remote URI. Exactly one of the two forms is set.
type PaddockImage struct {
	Data []byte
	MIME string
	URI  string
}

// Inline reports whether the image carries an inline payload.
func (img *PaddockImage) Inline() bool {
	return img != nil && len(img.Data) > 0
}

// Validate enforces the exactly-one-form invariant.
func (img *PaddockImage) Validate() error {
	if img == nil {
		return nil
	}
	hasInline := len(img.Data) > 0
	hasURI := strings.TrimSpace(img.URI) != ""
	if hasInline && hasURI {
		return dErrors.New(dErrors.CodeInvariantViolation, "paddock image cannot be both inline and remote")
	}
	if !hasInline && !hasURI {
		return dErrors.New(dErrors.CodeInvariantViolation, "paddock image must be inline or remote")
	}
	if hasInline && img.MIME == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "inline paddock image requires a mime type")
	}
	return nil
}

func (img *PaddockImage) clone() *PaddockImage {
	if img == nil {
		return nil
	}
	cp := *img
	cp.Data = append([]byte(nil), img.Data...)
	return &cp
}

// Paddock is a fenced area owned by one stable.
//
// Invariants:
//   - Name is non-empty
//   - Season is a valid enum value
//   - Horses is ordered, deduplicated, and may be empty
type Paddock struct {
	ID        id.PaddockID
	StableID  id.StableID
	Name      string
	Season    Season
	Horses    []string
	Image     *PaddockImage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPaddock validates and constructs a paddock.
func NewPaddock(paddockID id.PaddockID, stableID id.StableID, name string, season Season, horses []string, image *PaddockImage, now time.Time) (*Paddock, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "paddock name cannot be empty")
	}
	if stableID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "paddock requires an owning stable")
	}
	if !season.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown season: "+string(season))
	}
	if err := image.Validate(); err != nil {
		return nil, err
	}
	return &Paddock{
		ID:        paddockID,
		StableID:  stableID,
		Name:      name,
		Season:    season,
		Horses:    pstrings.DedupeAndTrim(horses),
		Image:     image.clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Clone returns a deep copy for defensive snapshots.
func (p *Paddock) Clone() *Paddock {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Horses = append([]string(nil), p.Horses...)
	cp.Image = p.Image.clone()
	return &cp
}

// PaddockPatch is a partial update applied by the gateway. Nil fields are
// untouched; a non-nil Horses replaces the whole ordered list.
type PaddockPatch struct {
	Name   *string
	Season *Season
	Horses []string
	Image  *PaddockImage
}

// CanApply validates the patch against the paddock's invariants.
func (p *Paddock) CanApply(patch PaddockPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return dErrors.New(dErrors.CodeInvariantViolation, "paddock name cannot be empty")
	}
	if patch.Season != nil && !patch.Season.IsValid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "unknown season: "+string(*patch.Season))
	}
	if patch.Image != nil {
		if err := patch.Image.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Apply commits the patch. Call CanApply first.
func (p *Paddock) Apply(patch PaddockPatch, now time.Time) {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Season != nil {
		p.Season = *patch.Season
	}
	if patch.Horses != nil {
		p.Horses = pstrings.DedupeAndTrim(patch.Horses)
	}
	if patch.Image != nil {
		p.Image = patch.Image.clone()
	}
	p.UpdatedAt = now
}
