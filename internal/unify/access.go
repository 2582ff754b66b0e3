package unify

import (
	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/constraint"
	"github.com/oocheck/oocheck/internal/names"
	"github.com/oocheck/oocheck/internal/srcpos"
)

// resolveField looks up fieldName on every class-backed TrueName of
// entityType, enforcing visibility, and returns one field type per
// overload that defines it (spec.md §4.7 "Access{entity, Field}").
func (u *unifier) resolveField(entityType names.Name, fieldName string, pos srcpos.Position) ([]names.Name, error) {
	var types []names.Name
	for _, t := range entityType.TrueNames() {
		single, ok := t.Variant.(names.Single)
		if !ok {
			continue
		}
		class, err := u.ctx.Class(names.NewSingle(single.Name), pos)
		if err != nil {
			continue
		}
		fr, ferr := class.Field(fieldName, pos)
		if ferr != nil {
			continue
		}
		if fr.Private && !u.classStackCanAccess(single.Name, pos) {
			return nil, newUnifyErr(checkerr.Visibility, pos, "field "+fieldName+" is private to "+single.Name)
		}
		types = append(types, fr.Type)
	}
	if len(types) == 0 {
		return nil, newUnifyErr(checkerr.Undefined, pos, "no field "+fieldName+" on "+entityType.String())
	}
	return types, nil
}

// resolveMethod looks up fm.Name on every class-backed TrueName of
// entityType, skipping overloads whose arity does not match, pushing
// argument-wise constraints for the overloads that do, and returns one
// return type per matching overload (spec.md §4.7 "Access{entity,
// Function}").
func (u *unifier) resolveMethod(entityType names.Name, fm constraint.Function, pos srcpos.Position) ([]names.Name, error) {
	var rets []names.Name
	for _, t := range entityType.TrueNames() {
		single, ok := t.Variant.(names.Single)
		if !ok {
			continue
		}
		class, err := u.ctx.Class(names.NewSingle(single.Name), pos)
		if err != nil {
			continue
		}
		overloads, ferr := class.Fun(fm.Name, pos)
		if ferr != nil {
			continue
		}
		for _, fr := range overloads {
			if len(fr.Args) != len(fm.Args) {
				continue
			}
			if fr.Private && !u.classStackCanAccess(single.Name, pos) {
				return nil, newUnifyErr(checkerr.Visibility, pos, "method "+fm.Name+" is private to "+single.Name)
			}
			for i, param := range fr.Args {
				if param.HasType {
					u.push(fm.Args[i], constraint.New(pos, constraint.Type{Name: param.Type}))
				}
			}
			rets = append(rets, fr.Ret)
		}
	}
	if len(rets) == 0 {
		return nil, newUnifyErr(checkerr.Undefined, pos, "no method "+fm.Name+" on "+entityType.String())
	}
	return rets, nil
}

// classStackCanAccess reports whether the active class stack authorizes
// access to a private member declared on declaringClass: the declaring
// class itself, or one of its descendants, must be on the stack (spec.md
// §7 "Visibility").
func (u *unifier) classStackCanAccess(declaringClass string, pos srcpos.Position) bool {
	for _, active := range u.classStack {
		if active == declaringClass {
			return true
		}
		if ok, err := u.ctx.HasParent(active, declaringClass, pos); err == nil && ok {
			return true
		}
	}
	return false
}
