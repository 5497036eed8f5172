package git

// MockOperations is a test double for Operations.
type MockOperations struct {
	CloneOrUpdateFunc func(repoURL, localPath string) error
	HeadCommitFunc    func(localPath string) string

	CloneCalls []string
}

func (m *MockOperations) CloneOrUpdate(repoURL, localPath string) error {
	m.CloneCalls = append(m.CloneCalls, repoURL)
	if m.CloneOrUpdateFunc != nil {
		return m.CloneOrUpdateFunc(repoURL, localPath)
	}
	return nil
}

func (m *MockOperations) HeadCommit(localPath string) string {
	if m.HeadCommitFunc != nil {
		return m.HeadCommitFunc(localPath)
	}
	return "abcd1234"
}
