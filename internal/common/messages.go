package common

// LoadFailedMessage is the only failure text ever shown to users, whatever went wrong with the fetch.
const LoadFailedMessage = "Failed to load movies. Please try again later."
