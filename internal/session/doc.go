package session

// Package session owns the state of the phone screen: the displayed image and
// title, the active filter, the gallery, the generation loading flag and the
// export status. The UI renders snapshots and changes state only through the
// controller's operations.
