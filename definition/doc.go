// Package definition models a Conjure API definition: services, endpoints,
// arguments and named types.
//
// The model is plain data. Values are usually produced by [Load] or
// [LoadBytes] from a Conjure IR document and then checked with [Validate]:
//
//	def, err := definition.Load("api.conjure.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := definition.Validate(def); err != nil {
//	    log.Fatal(err)
//	}
//
// The variant types of the IR ([Type], [ParameterType], [AuthType] and
// [TypeDefinition]) are Go interfaces with one concrete type per variant.
// They are encoded with the wire package's tagged union format, so a
// definition round-trips through wire.Marshal and wire.Unmarshal.
//
// Code that inspects types asks an [Index] rather than switching on the
// concrete type, so that aliases are followed:
//
//	idx := definition.NewIndex(def)
//	if inner, ok := idx.IsOptional(arg.Type); ok {
//	    ...
//	}
//
// Definitions built by hand can be checked field by field with
// [NewServiceDefinition], [NewEndpointDefinition] and [NewArgumentDefinition],
// which report every missing required field in one error.
package definition
