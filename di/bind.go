package di

// BindInstance binds T to value.
func BindInstance[T any](c *Container, value T) error {
	b, err := c.Bind(KeyOf[T]())
	if err != nil {
		return err
	}
	return b.Instance(value)
}

// BindTransient binds T to ctor with the Transient lifecycle.
//
// Example:
//
//	err := di.BindTransient[Repository](c, di.Ctor1(NewSQLRepository))
func BindTransient[T any](c *Container, ctor Constructor) error {
	b, err := c.Bind(KeyOf[T]())
	if err != nil {
		return err
	}
	return b.Transient(ctor)
}

// BindSingleton binds T to ctor with the Singleton lifecycle.
func BindSingleton[T any](c *Container, ctor Constructor) error {
	b, err := c.Bind(KeyOf[T]())
	if err != nil {
		return err
	}
	return b.Singleton(ctor)
}

// BindSingletonFactory binds T to factory with the Singleton lifecycle.
//
// Example:
//
//	err := di.BindSingletonFactory[*sql.DB](c, di.FactoryOf(openDatabase))
func BindSingletonFactory[T any](c *Container, factory Factory) error {
	b, err := c.Bind(KeyOf[T]())
	if err != nil {
		return err
	}
	return b.SingletonFactory(factory)
}

// BindScoped binds T to ctor with the Scoped lifecycle.
func BindScoped[T any](c *Container, ctor Constructor) error {
	b, err := c.Bind(KeyOf[T]())
	if err != nil {
		return err
	}
	return b.Scoped(ctor)
}

// BindScopeContext binds T to the current scope context.
//
// Example:
//
//	err := di.BindScopeContext[Request](c, di.KeyOf[*HTTPRequest](), di.KeyOf[*GRPCRequest]())
//	c.BeginScopeWith(&HTTPRequest{})
func BindScopeContext[T any](c *Container, permitted ...TypeKey) error {
	b, err := c.Bind(KeyOf[T]())
	if err != nil {
		return err
	}
	return b.ScopeContext(permitted...)
}
