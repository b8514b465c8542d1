// Package injectparam defines parameter decorators whose value is computed
// from the execution context together with services resolved by the
// request container.
//
//	var CurrentUser = injectparam.CreateWithInjections(
//		func(data interface{}, ctx contracts.ExecutionContext, services injectparam.Services, extra injectparam.ExtraGetters) (interface{}, error) {
//			users, _ := injectparam.Service[*UserService](services, "users")
//			return users.FromRequest(extra.Req())
//		},
//		injectparam.Dependencies{injectparam.Dep[*UserService]("users")},
//	)
//
//	w.Get("/me", decorator.MustBind(func(u *User) *User { return u }, CurrentUser(nil)))
//
// The dependencies are requested by a pipe constructor whose parameter types
// are the dependency types, so the container supplies the instances when it
// builds the pipe. The instances are handed to the function by field name on
// every call.
package injectparam
