package preset

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
)

// Notes is the identity record embedded in a preset, linking it to a catalog
// entry on the printer. It is stored as a string-encoded JSON document,
// wrapped in a single-element sequence per the preset value convention.
type Notes struct {
	ID     string `json:"id"`
	Vendor string `json:"vendor"`
	Type   string `json:"type"`
	Name   string `json:"name"`
}

// TypeCustom is the sentinel material type used when no type can be derived.
const TypeCustom = "CUSTOM"

// inheritsTypePattern extracts the material type from an inheritance name of
// the form "<family>_filament_<type>", e.g. "fdm_filament_petg" -> "petg".
var inheritsTypePattern = regexp.MustCompile(`(?i)_filament_([a-z0-9+-]+)`)

var vendorCaser = cases.Title(language.English)

// Valid reports whether the record carries a complete identity.
func (n Notes) Valid() bool {
	return n.ID != "" && n.Vendor != "" && n.Type != "" && n.Name != ""
}

// Marshal renders the record as its embedded string form.
func (n Notes) Marshal() (string, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return "", errors.WrapParse("json", "", err)
	}
	return string(data), nil
}

// ParseNotes decodes an embedded Notes string.
func ParseNotes(s string) (Notes, error) {
	var n Notes
	if strings.TrimSpace(s) == "" {
		return n, errors.NewValidationError(FieldNotes, s, "empty notes")
	}
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return n, errors.NewParseError("json", "", "invalid notes", err)
	}
	return n, nil
}

// DeriveID computes the stable 5-digit material id for an identity triple.
// It is a pure function of (vendor, type, name): FNV-1a over "vendor|type|name"
// reduced into the printer's custom-material id space.
func DeriveID(vendor, typ, name string) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%s", vendor, typ, name)
	return fmt.Sprintf("%05d", h.Sum32()%constants.IDRange+constants.IDOffset)
}

// TypeFromInherits extracts the material type from an inheritance name,
// returning TypeCustom when the name does not match the slicer's
// "<family>_filament_<type>" convention.
func TypeFromInherits(inherits string) string {
	m := inheritsTypePattern.FindStringSubmatch(inherits)
	if m == nil {
		return TypeCustom
	}
	return strings.ToUpper(m[1])
}

// EnsureNotes returns the preset's Notes, synthesizing and writing them back
// when missing or unparseable. A preset whose identity is still incomplete
// after synthesis yields an IdentityError and must be excluded downstream.
func EnsureNotes(p *Preset) (Notes, error) {
	if v, ok := p.Fields[FieldNotes]; ok {
		if n, err := ParseNotes(v.String()); err == nil && n.Valid() {
			return n, nil
		}
	}

	n := synthesizeNotes(p)
	if !n.Valid() {
		return n, errors.NewIdentityError(p.Name(), "notes invalid after synthesis", nil)
	}

	embedded, err := n.Marshal()
	if err != nil {
		return n, errors.NewIdentityError(p.Name(), "cannot serialize notes", err)
	}
	p.Fields[FieldNotes] = Sequence(embedded)

	// The operator needs the generated id to pair RFID tags with the entry.
	logging.Warn().
		Str("preset", n.Name).
		Str("id", n.ID).
		Msg("Preset had no notes; generated identity")

	return n, nil
}

// synthesizeNotes builds an identity record from the preset's own fields.
func synthesizeNotes(p *Preset) Notes {
	vendor := p.Get(FieldVendor)
	if vendor == "" {
		vendor = "Generic"
	}
	// Title-case display vendors like "polymaker", but leave stylized
	// casings such as "eSUN" alone.
	if vendor == strings.ToLower(vendor) {
		vendor = vendorCaser.String(vendor)
	}

	typ := p.Get(FieldType)
	if typ == "" {
		typ = TypeFromInherits(p.Inherits())
	}

	name := p.Name()

	return Notes{
		ID:     DeriveID(vendor, typ, name),
		Vendor: vendor,
		Type:   typ,
		Name:   name,
	}
}
