// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

/*
Package authz provides role-based authorization using Casbin.

The Enforcer implements auth.Authorizer. Subjects are roles ("admin",
"user"), not users; "admin" inherits every "user" permission through a
grouping rule. The model and policy are embedded and can be replaced with
files via EnforcerConfig.

Capabilities pair a policy (object, action) with the message returned on
denial:

	r.With(guard.Require(authz.CreatePart)).Post("/api/parts", h.CreatePart)
*/
package authz
