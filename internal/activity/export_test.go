package activity

import "github.com/go-drift/apppermission/pkg/permission"

// OverrideSpec replaces the spec builder of action until restore is called.
func OverrideSpec(action Action, spec func(permission.PlatformTier) permission.Spec) (restore func()) {
	f := flows[action]
	old := f.spec
	f.spec = spec
	flows[action] = f
	return func() {
		f.spec = old
		flows[action] = f
	}
}
