package server

import (
	"fmt"
	"strings"

	"github.com/crystal-mush/mudbits/pkg/english"
	"github.com/crystal-mush/mudbits/pkg/gamedb"
)

// canTendFeatures limits feature administration. Players may adjust their
// own appearance, everything else takes ownership or wizard powers.
func (g *Game) canTendFeatures(player gamedb.DBRef, obj *gamedb.Object) bool {
	return obj.Ref == player || obj.Owner == player || Wizard(g, player)
}

// cmdFeature: @feature[/switch] <obj> [= args]
//
//	@feature <obj>                             list features as they display
//	@feature/add <obj> = <name>:<value,...>    add a plain-value feature
//	@feature/format <obj> = <name>:<template>  add a format feature, e.g.
//	                                           "{length} {color}" hair
//	@feature/set <obj> = <name>:<key>=<value,...>  set option values
//	@feature/soft <obj> = <name>:<key>=<value,...> set, restorable by /reset
//	@feature/merge <obj> = <name>:<key>=<value,...> merge extra option values
//	@feature/merge <obj> = <name>:<value,...>  merge plain values, creating
//	                                           the feature if missing
//	@feature/merge/soft <obj> = ...            merge, restorable by /reset
//	@feature/options <obj> = <name>            show a feature's option keys
//	@feature/remove <obj> = <name>             delete one feature
//	@feature/reset <obj>                       undo all soft-set values
//
// Add and format specs take ";"-separated directives after the value:
// ";prefix=<text>" prepends text to the rendered view, ";article" puts an
// indefinite article in front ("a long fluffy tail").
func cmdFeature(g *Game, d *Descriptor, args string, switches []string) {
	lhs, rhs, _ := strings.Cut(args, "=")
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)
	if lhs == "" {
		d.Send("Usage: @feature[/switch] <object> [= args]")
		return
	}
	sw := ""
	if len(switches) > 0 {
		sw = switches[0]
	}

	matches := g.SearchLocal(d.Player, lhs)
	g.Resolve(d, lhs, matches, fmt.Sprintf("You don't see any %s here.", lhs), func(ref gamedb.DBRef) {
		obj := g.DB.Get(ref)
		if obj == nil {
			return
		}
		if !g.canTendFeatures(d.Player, obj) {
			d.Send("Permission denied.")
			return
		}

		switch sw {
		case "":
			g.showFeatures(d, obj)
		case "add", "format":
			name, spec, ok := strings.Cut(rhs, ":")
			name = strings.TrimSpace(name)
			body, prefix, article := parseFeatureSpec(spec)
			if !ok || name == "" || body == "" {
				d.Send("Usage: @feature/add <object> = <name>:<value,...>[;prefix=<text>][;article]")
				return
			}
			f := &gamedb.Feature{Prefix: prefix, Article: article}
			if sw == "format" {
				f.Format = body
			} else {
				f.Value = splitList(body)
			}
			if err := obj.AddFeature(name, f, false); err != nil {
				d.Send(strings.ToUpper(err.Error()[:1]) + err.Error()[1:] + ".")
				return
			}
			g.PersistObject(obj)
			d.Sendf("Feature '%s' added: %s", name, obj.FeatureView(name))
		case "set", "soft":
			name, assign, ok := strings.Cut(rhs, ":")
			name = strings.TrimSpace(name)
			if !ok {
				d.Send("Usage: @feature/set <object> = <name>:<key>=<value,...>")
				return
			}
			key, value, ok := strings.Cut(assign, "=")
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if !ok || key == "" || value == "" {
				d.Send("Usage: @feature/set <object> = <name>:<key>=<value,...>")
				return
			}
			err := obj.SetFeature(name, sw == "soft", map[string][]string{key: splitList(value)})
			if err != nil {
				d.Send(strings.ToUpper(err.Error()[:1]) + err.Error()[1:] + ".")
				return
			}
			g.PersistObject(obj)
			d.Sendf("Feature '%s' is now: %s", name, obj.FeatureView(name))
		case "merge":
			soft := len(switches) > 1 && switches[1] == "soft"
			name, spec, ok := strings.Cut(rhs, ":")
			name = strings.TrimSpace(name)
			spec = strings.TrimSpace(spec)
			if !ok || name == "" || spec == "" {
				d.Send("Usage: @feature/merge <object> = <name>:<key>=<value,...> or <name>:<value,...>")
				return
			}
			f := &gamedb.Feature{}
			if key, value, isOpt := strings.Cut(spec, "="); isOpt {
				key = strings.TrimSpace(key)
				value = strings.TrimSpace(value)
				if key == "" || value == "" {
					d.Send("Usage: @feature/merge <object> = <name>:<key>=<value,...>")
					return
				}
				f.Options = map[string][]string{key: splitList(value)}
			} else {
				f.Value = splitList(spec)
			}
			if err := obj.MergeFeature(name, soft, f); err != nil {
				d.Send(strings.ToUpper(err.Error()[:1]) + err.Error()[1:] + ".")
				return
			}
			g.PersistObject(obj)
			d.Sendf("Feature '%s' is now: %s", name, obj.FeatureView(name))
		case "options":
			keys := obj.FeatureOptions(rhs)
			if len(keys) == 0 {
				d.Sendf("Feature '%s' has no options.", rhs)
				return
			}
			d.Sendf("Options for '%s': %s", rhs, english.ListToString(keys))
		case "remove":
			if _, ok := obj.Features[rhs]; !ok {
				d.Sendf("No feature named '%s'.", rhs)
				return
			}
			obj.RemoveFeature(rhs)
			g.PersistObject(obj)
			d.Sendf("Feature '%s' removed.", rhs)
		case "reset":
			obj.ResetFeatures()
			g.PersistObject(obj)
			d.Sendf("Features on %s reset to their defaults.", obj.Name)
		default:
			d.Sendf("Unknown switch: /%s", sw)
		}
	})
}

// showFeatures lists an object's features, one rendered line each.
func (g *Game) showFeatures(d *Descriptor, obj *gamedb.Object) {
	names := obj.FeatureNames()
	if len(names) == 0 {
		d.Sendf("%s has no features.", obj.Name)
		return
	}
	d.Sendf("Features on %s:", obj.Name)
	for _, name := range names {
		d.Sendf(" %s: %s", name, obj.FeatureView(name))
	}
}

// parseFeatureSpec splits "<body>[;prefix=<text>][;article]" directives off
// a feature spec.
func parseFeatureSpec(spec string) (body, prefix string, article bool) {
	parts := strings.Split(spec, ";")
	body = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		switch {
		case p == "article":
			article = true
		case strings.HasPrefix(p, "prefix="):
			prefix = strings.TrimSpace(strings.TrimPrefix(p, "prefix="))
		}
	}
	return body, prefix, article
}

// splitList splits "a,b,c" into trimmed non-empty parts.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
