// Package envcfg resolves application configuration from environment
// variables through a declarative schema.
//
// A schema is a tree of namespaces and variables. Each variable has a type
// and, optionally, a default, an explicit environment key, or a template
// composing its value from literals and other environment keys. A variable's
// key is its namespace path plus its name, joined with "_" and upper-cased,
// unless overridden:
//
//	spec := envcfg.NS("",
//		envcfg.Var("DEBUG", envcfg.Bool, envcfg.WithDefault(false)),
//		envcfg.NS("DB",
//			envcfg.Var("HOST", envcfg.String),                       // DB_HOST
//			envcfg.Var("PORT", envcfg.Uint16, envcfg.WithDefault(5432)), // DB_PORT
//		),
//		envcfg.Concat("DATABASE_URL", envcfg.Template{
//			envcfg.Lit("postgres://"), envcfg.Ref("DB_HOST"),
//			envcfg.Lit(":"), envcfg.Ref("DB_PORT"),
//		}),
//	)
//
//	cfg, err := envcfg.Load(spec)
//	if err != nil {
//		log.Fatal(err) // Cannot read "DB_HOST" environment variable
//	}
//	port, _ := cfg.Lookup("DB.PORT")
//
// Build validates the schema; Initialize resolves it exactly once, in
// declaration order, and returns an immutable Snapshot. Defaults and composed
// values are written back to the environment so later lookups, including
// child processes, observe them. The first missing variable or conversion
// failure aborts initialization.
//
// Schemas can also be read from YAML, TOML, JSON or INI files with the
// schemafile package.
package envcfg
