package runtime

import (
	"github.com/ehtick/svelte/packages/compiler/src/output"
)

// ClientModule is the module every runtime reference points at. Generated
// code imports it once under the `$` namespace.
var ClientModule string = "svelte/internal/client"

// Namespace is the local name the runtime module is imported as
const Namespace = "$"

// Lists
var (
	RenderList             = &output.ExternalReference{Name: stringPtr("renderList"), ModuleName: &ClientModule}
	Index                  = &output.ExternalReference{Name: stringPtr("index"), ModuleName: &ClientModule}
	ValidateListKeys       = &output.ExternalReference{Name: stringPtr("validateListKeys"), ModuleName: &ClientModule}
	InvalidateStoreBinding = &output.ExternalReference{Name: stringPtr("invalidateStoreBinding"), ModuleName: &ClientModule}
	InvalidateInnerSignals = &output.ExternalReference{Name: stringPtr("invalidateInnerSignals"), ModuleName: &ClientModule}
	RegisterAsyncInit      = &output.ExternalReference{Name: stringPtr("registerAsyncInit"), ModuleName: &ClientModule}
	ToArray                = &output.ExternalReference{Name: stringPtr("toArray"), ModuleName: &ClientModule}
	ExcludeFromObject      = &output.ExternalReference{Name: stringPtr("excludeFromObject"), ModuleName: &ClientModule}
	Fallback               = &output.ExternalReference{Name: stringPtr("fallback"), ModuleName: &ClientModule}
)

// Signals
var (
	Get                     = &output.ExternalReference{Name: stringPtr("get"), ModuleName: &ClientModule}
	Set                     = &output.ExternalReference{Name: stringPtr("set"), ModuleName: &ClientModule}
	Update                  = &output.ExternalReference{Name: stringPtr("update"), ModuleName: &ClientModule}
	UpdatePre               = &output.ExternalReference{Name: stringPtr("updatePre"), ModuleName: &ClientModule}
	Mutate                  = &output.ExternalReference{Name: stringPtr("mutate"), ModuleName: &ClientModule}
	MutableSource           = &output.ExternalReference{Name: stringPtr("mutableSource"), ModuleName: &ClientModule}
	DeclareState            = &output.ExternalReference{Name: stringPtr("declareState"), ModuleName: &ClientModule}
	DeclareDerived          = &output.ExternalReference{Name: stringPtr("declareDerived"), ModuleName: &ClientModule}
	DeclareDerivedSafeEqual = &output.ExternalReference{Name: stringPtr("declareDerivedSafeEqual"), ModuleName: &ClientModule}
	WrapProxy               = &output.ExternalReference{Name: stringPtr("wrapProxy"), ModuleName: &ClientModule}
	Snapshot                = &output.ExternalReference{Name: stringPtr("snapshot"), ModuleName: &ClientModule}
)

// Effects
var (
	EffectRoot         = &output.ExternalReference{Name: stringPtr("effectRoot"), ModuleName: &ClientModule}
	EffectTracking     = &output.ExternalReference{Name: stringPtr("effectTracking"), ModuleName: &ClientModule}
	Pending            = &output.ExternalReference{Name: stringPtr("pending"), ModuleName: &ClientModule}
	UserEffect         = &output.ExternalReference{Name: stringPtr("userEffect"), ModuleName: &ClientModule}
	UserPreEffect      = &output.ExternalReference{Name: stringPtr("userPreEffect"), ModuleName: &ClientModule}
	LegacyPreEffect    = &output.ExternalReference{Name: stringPtr("legacyPreEffect"), ModuleName: &ClientModule}
	Inspect            = &output.ExternalReference{Name: stringPtr("inspect"), ModuleName: &ClientModule}
	LogIfContainsState = &output.ExternalReference{Name: stringPtr("logIfContainsState"), ModuleName: &ClientModule}
)

// Props and stores
var (
	RestProps   = &output.ExternalReference{Name: stringPtr("restProps"), ModuleName: &ClientModule}
	StoreGet    = &output.ExternalReference{Name: stringPtr("storeGet"), ModuleName: &ClientModule}
	StoreSet    = &output.ExternalReference{Name: stringPtr("storeSet"), ModuleName: &ClientModule}
	SetupStores = &output.ExternalReference{Name: stringPtr("setupStores"), ModuleName: &ClientModule}
)

// DOM
var (
	Text       = &output.ExternalReference{Name: stringPtr("text"), ModuleName: &ClientModule}
	Element    = &output.ExternalReference{Name: stringPtr("element"), ModuleName: &ClientModule}
	Attr       = &output.ExternalReference{Name: stringPtr("attr"), ModuleName: &ClientModule}
	Event      = &output.ExternalReference{Name: stringPtr("event"), ModuleName: &ClientModule}
	Bind       = &output.ExternalReference{Name: stringPtr("bind"), ModuleName: &ClientModule}
	Animation  = &output.ExternalReference{Name: stringPtr("animation"), ModuleName: &ClientModule}
	Transition = &output.ExternalReference{Name: stringPtr("transition"), ModuleName: &ClientModule}
)

// Runtime features the generated code may depend on. The config package maps
// each one to the runtime versions that provide it.
const (
	FeatureRunes     = "runes"
	FeatureAsyncInit = "async-init"
)

// Aliases maps the runtime module to its import namespace for the emitter
func Aliases() map[string]string {
	return map[string]string{ClientModule: Namespace}
}

func stringPtr(s string) *string {
	return &s
}
