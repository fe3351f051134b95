package ports

// PipelineNotifier avisa os clientes conectados de um usuário que o board mudou
type PipelineNotifier interface {
	PipelineChanged(userID, reason string)
}
