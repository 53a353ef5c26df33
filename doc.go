// Package provision is a small constructor-based injection container with provision listeners.
//
// Bindings map a [Key] (a type, optionally qualified by a name) to a constructor and the keys of
// its arguments. Resolving a key builds its dependencies depth-first, calls the constructor, and
// then notifies every [ProvisionListener] whose [Matcher] selects the binding.
//
// Listeners only ever see finished instances. When a constructor fails, or any dependency on the
// path cannot be resolved, no listener runs for that key or for any key waiting on it, and the
// caller receives the failure of the node that actually broke: a [*MissingBindingError] or a
// [*ConstructionError].
//
//	c := provision.New()
//	c.Register(provision.KeyOf[*Repo](), NewRepo, provision.NamedKey[string]("dsn"))
//	c.Register(provision.KeyOf[*Service](), NewService, provision.KeyOf[*Repo]())
//	c.RegisterPostConstruct()
//
//	svc, err := provision.Get[*Service](c)
package provision
