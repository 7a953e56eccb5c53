package upload

import "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/storage"

// UploadResponse 上传结果
type UploadResponse = storage.Object
