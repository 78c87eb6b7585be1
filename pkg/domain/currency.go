package domain

// CurrencyMYR is the only currency the platform settles in today.
const CurrencyMYR = "MYR"
