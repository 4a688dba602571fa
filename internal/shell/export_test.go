package shell

var NewFailuresWith = newFailures
