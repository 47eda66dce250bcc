package constants

const ImportInprog = "In-Progress"
const ImportComplete = "Completed"
const ImportFail = "Failed"

// Transaction set codes recognized by the decoder.
const (
	SetEligibilityInquiry  = "270"
	SetEligibilityResponse = "271"
	SetPriorAuth           = "278"
	SetClaim               = "837"
)

// This is set during compilation. See build_and_package.sh in the ops repo.
var Version = "latest"
