package patch

const (
	OperationAdd     = "add"
	OperationReplace = "replace"
)

type Operation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

func Add(path string, value any) Operation {
	return Operation{Op: OperationAdd, Path: path, Value: value}
}

func Replace(path string, value any) Operation {
	return Operation{Op: OperationReplace, Path: path, Value: value}
}
