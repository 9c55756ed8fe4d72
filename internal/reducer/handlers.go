package reducer

// globalHandlers/globalCanApply are populated by each handler file's
// init(), then copied into every new Reducer's instance maps by New.
// Kept as a package-level registry (mirroring internal/action.Default) so
// concrete handler files can self-register without a central switch
// statement, per spec §9's "closed enum... plus a registration-time-built
// dispatch table" design note applied to dispatch instead of decode.
var (
	globalHandlers = make(map[string]Handler)
	globalCanApply = make(map[string]CanApplyFunc)
)

func registerHandler(typePath string, h Handler) {
	globalHandlers[typePath] = h
}

func registerCanApply(typePath string, f CanApplyFunc) {
	globalCanApply[typePath] = f
}
