// Package gitrepo implements shared.GitRepositoryManager twice: RepositoryManager
// drives the git executable through execshell, and NativeRepositoryManager works
// in-process on top of go-git. Both discover the repository from the supplied
// path the way git does, walking up to the enclosing checkout.
package gitrepo
