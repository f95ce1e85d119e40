package oparse

// Merge copies every entry from other into r, deep-cloning the entry
// state (aliases, annotations, defaults).  Value handles are shared,
// not cloned: the caller storage keeps living with other's
// definitions, which is the intended arrangement when composing flag
// namespaces out of per-component registries.
//
// When ignoreDuplicates is true, entries whose name, shorthand, or
// alias collides with something already in r are skipped.  Otherwise
// the first collision fails the whole merge and r is left unchanged.
func (r *Registry) Merge(other *Registry, ignoreDuplicates bool) error {
	if other == nil {
		return nil
	}
	clones := make([]*Flag, 0, len(other.ordered))
	for _, flag := range other.ordered {
		if err := r.checkMergeConflict(flag); err != nil {
			if ignoreDuplicates {
				debugf("merge skipping --%s: %s", flag.Name, err)
				continue
			}
			return err
		}
		clones = append(clones, flag.clone())
	}
	for _, clone := range clones {
		if err := r.AddFlag(clone); err != nil {
			// conflicts were pre-checked; anything here is a bug
			return libraryErrorf(err, "merge of pre-checked --%s", clone.Name)
		}
	}
	return nil
}

func (r *Registry) checkMergeConflict(flag *Flag) error {
	if _, ok := r.defined[flag.Name]; ok {
		return programmerErrorf(ErrDuplicateName, "%s", flag.Name)
	}
	if _, ok := r.aliases[flag.Name]; ok {
		return programmerErrorf(ErrDuplicateName, "%s collides with an alias", flag.Name)
	}
	if flag.Shorthand != "" {
		if old, ok := r.shorthands[flag.Shorthand[0]]; ok {
			return programmerErrorf(ErrDuplicateShorthand, "%q used by both --%s and --%s",
				flag.Shorthand, old.Name, flag.Name)
		}
	}
	for _, alias := range flag.Aliases {
		if _, ok := r.defined[alias]; ok {
			return programmerErrorf(ErrDuplicateName, "alias %s", alias)
		}
		if _, ok := r.aliases[alias]; ok {
			return programmerErrorf(ErrDuplicateName, "alias %s", alias)
		}
	}
	return nil
}
