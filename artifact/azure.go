package artifact

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/SaiNageswarS/report-boot/schema"
)

// bufferUploader is the part of *azblob.Client used by AzureSink.
type bufferUploader interface {
	UploadBuffer(ctx context.Context, containerName string, blobName string, buffer []byte, o *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

type AzureSink struct {
	client    bufferUploader
	account   string
	container string
	prefix    string
}

func NewAzureSink(account, key, container, prefix string) (*AzureSink, error) {
	if account == "" || key == "" || container == "" {
		return nil, fmt.Errorf("azure_account/azure_key/azure_container required for the azure sink")
	}
	credential, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, fmt.Errorf("build shared key credential: %w", err)
	}
	url := fmt.Sprintf("https://%s.blob.core.windows.net/", account)
	client, err := azblob.NewClientWithSharedKeyCredential(url, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}
	return &AzureSink{client: client, account: account, container: container, prefix: prefix}, nil
}

func (a *AzureSink) Name() string {
	return "azure"
}

func (a *AzureSink) Save(ctx context.Context, artifact *schema.BinaryArtifact) (string, error) {
	blobName := keyFor(a.prefix, artifact.Name)
	if _, err := a.client.UploadBuffer(ctx, a.container, blobName, artifact.Data, nil); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", a.account, a.container, blobName), nil
}
