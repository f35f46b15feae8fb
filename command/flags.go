package command

const (
	verboseFlag       = "verbose"
	noColorFlag       = "no-color"
	passwordFlag      = "password"
	passwordFileFlag  = "password-file"
	saltFlag          = "salt"
	saltEncodingFlag  = "salt-encoding"
	iterationsFlag    = "iterations"
	maxIterationsFlag = "max-iterations"
	lengthFlag        = "length"
	prfFlag           = "prf"
	encodingFlag      = "encoding"
	expectedFlag      = "expected"
	notifyFlag        = "notify"
	sizeFlag          = "size"
	targetFlag        = "target"
	roundsFlag        = "rounds"
	quickFlag         = "quick"
	compressFlag      = "compress"
	levelFlag         = "level"
	inFlag            = "in"
	outFlag           = "out"
)

const (
	envPassword   = "NDNKDF_PASSWORD"
	envIterations = "NDNKDF_ITERATIONS"
	envPRF        = "NDNKDF_PRF"
)
