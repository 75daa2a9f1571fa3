package gamedb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/english"
)

// FeatureError reports feature manipulation failures.
type FeatureError struct {
	msg string
}

func (e *FeatureError) Error() string { return e.msg }

func featureErrorf(format string, args ...any) error {
	return &FeatureError{msg: fmt.Sprintf(format, args...)}
}

// Feature is one named appearance feature on an object. A feature either
// carries a plain Value, or a Format template with {key} placeholders
// filled from Options.
type Feature struct {
	Format  string
	Prefix  string
	Article bool
	Value   []string
	Options map[string][]string
	// Defaults preserves the pre-soft-set values per option key so Reset
	// can restore them.
	Defaults map[string][]string
}

// FeatureNames returns the object's feature names, sorted for stable output.
func (o *Object) FeatureNames() []string {
	names := make([]string, 0, len(o.Features))
	for name := range o.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddFeature registers a feature. Fails if the name exists, unless force.
// Either value or a format template must be provided.
func (o *Object) AddFeature(name string, f *Feature, force bool) error {
	if o.Features == nil {
		o.Features = make(map[string]*Feature)
	}
	if _, ok := o.Features[name]; ok && !force {
		return featureErrorf("feature %q already exists and would be overwritten", name)
	}
	if f.Format == "" && len(f.Value) == 0 {
		return featureErrorf("no valid values provided when adding feature %q", name)
	}
	if f.Options == nil {
		f.Options = make(map[string][]string)
	}
	o.Features[name] = f
	return nil
}

// SetFeature sets option values on an existing feature. With soft set, the
// previous values are preserved so ResetFeatures can restore them.
func (o *Object) SetFeature(name string, soft bool, values map[string][]string) error {
	f, ok := o.Features[name]
	if !ok {
		return featureErrorf("feature %q does not exist on this object, use AddFeature instead", name)
	}
	for key, value := range values {
		if soft {
			if f.Defaults == nil {
				f.Defaults = make(map[string][]string)
			}
			if _, saved := f.Defaults[key]; !saved {
				f.Defaults[key] = f.Options[key]
			}
		}
		f.Options[key] = value
	}
	return nil
}

// MergeFeature merges extra values into a feature's options and plain
// values, adding the feature if it does not exist yet. Soft-merged option
// values are restorable via ResetFeatures.
func (o *Object) MergeFeature(name string, soft bool, f *Feature) error {
	existing, ok := o.Features[name]
	if !ok {
		return o.AddFeature(name, f, false)
	}
	for key, values := range f.Options {
		current, has := existing.Options[key]
		if !has {
			existing.Options[key] = values
			continue
		}
		if soft {
			if existing.Defaults == nil {
				existing.Defaults = make(map[string][]string)
			}
			if _, saved := existing.Defaults[key]; !saved {
				existing.Defaults[key] = current
			}
		} else if existing.Defaults != nil {
			// hard merge resets any soft values first
			if saved, has := existing.Defaults[key]; has {
				current = saved
				delete(existing.Defaults, key)
			}
		}
		for _, v := range values {
			if !contains(current, v) {
				current = append(current, v)
			}
		}
		existing.Options[key] = current
	}
	for _, v := range f.Value {
		if !contains(existing.Value, v) {
			existing.Value = append(existing.Value, v)
		}
	}
	return nil
}

// FeatureOptions returns the option keys available on a format feature, or
// nil for plain-value features and unknown names.
func (o *Object) FeatureOptions(name string) []string {
	f, ok := o.Features[name]
	if !ok || f.Format == "" {
		return nil
	}
	keys := make([]string, 0, len(f.Options))
	for key := range f.Options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FeatureView renders one feature as display text: "long black hair".
func (o *Object) FeatureView(name string) string {
	f, ok := o.Features[name]
	if !ok {
		return ""
	}
	var s string
	if f.Format != "" {
		s = f.Format
		for key, values := range f.Options {
			s = strings.ReplaceAll(s, "{"+key+"}", english.ListToString(values))
		}
	} else {
		s = english.ListToString(f.Value)
	}
	if f.Prefix != "" {
		s = f.Prefix + " " + s
	}
	if f.Article {
		s = english.AName(s)
	}
	// compress whitespace
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return name
	}
	return s + " " + name
}

// FeaturesView renders every feature joined into one phrase.
func (o *Object) FeaturesView() string {
	views := make([]string, 0, len(o.Features))
	for _, name := range o.FeatureNames() {
		views = append(views, o.FeatureView(name))
	}
	return english.ListToString(views)
}

// ResetFeatures restores all soft-set option values to their saved defaults.
func (o *Object) ResetFeatures() {
	for _, f := range o.Features {
		for key, saved := range f.Defaults {
			f.Options[key] = saved
		}
		f.Defaults = nil
	}
}

// RemoveFeature deletes one feature by name.
func (o *Object) RemoveFeature(name string) {
	delete(o.Features, name)
}

// ClearFeatures deletes every feature.
func (o *Object) ClearFeatures() {
	o.Features = nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
