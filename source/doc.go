// Copyright (c) 2025 Conflux Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package source resolves configuration data out of heterogeneous places
// into the shared tree model.
//
// A [Source] is a named path-to-tree resolver. Sources compose with
// [Source.OrElse] for ordered per-path fallback and [Source.ConvertKeys]
// for key translation, so one descriptor can be satisfied by command line
// arguments, the environment and a config file at once:
//
//	src := source.FromArgs(os.Args[1:], source.WithKeyDelimiter(".")).
//		OrElse(source.FromEnv(source.EnvPrefix("MYAPP_"))).
//		OrElse(fileSrc)
//
// Constructors cover fixed trees, flat maps and multi-maps, the process
// environment, command line argument lists, and YAML, JSON, TOML and
// properties documents.
package source
